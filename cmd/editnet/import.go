package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/config"
	"github.com/wikimetrics/editnet/internal/editstore"
)

func runImport(logger *log.Logger, cfg *config.ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to the edit database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: editnet import [flags] <edits.csv>")
	}
	csvPath := fs.Arg(0)

	records, err := editstore.ReadEditsFile(csvPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", csvPath, err)
	}
	logger.Debug("parsed edit history", "path", csvPath, "rows", len(records))

	ctx := context.Background()
	store, err := openEditStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, r := range records {
		if err := store.AddEdit(ctx, r); err != nil {
			return fmt.Errorf("add edit: %w", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	logger.Info("imported edits",
		"imported", len(records),
		"edits", stats.EditCount,
		"pages", stats.PageCount,
		"editors", stats.EditorCount,
	)
	return nil
}
