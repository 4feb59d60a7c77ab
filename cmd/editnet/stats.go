package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/config"
	"github.com/wikimetrics/editnet/internal/stats"
)

func runStats(logger *log.Logger, cfg *config.ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to the edit database")
	out := fs.String("out", "", "write the stats CSV to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, end, window, err := cfg.WindowRange()
	if err != nil {
		return err
	}
	windows := stats.Windows(start, end, window)
	if len(windows) == 0 {
		return fmt.Errorf("no complete window fits between %s and %s", cfg.StartDate, cfg.EndDate)
	}

	ctx := context.Background()
	store, err := openEditStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	edits, err := store.AllEdits(ctx, start, end)
	if err != nil {
		return fmt.Errorf("load edits: %w", err)
	}
	logger.Debug("loaded edits", "count", len(edits), "windows", len(windows))

	rows, err := stats.ComputeWindows(edits, windows, cfg.BuildOptions())
	if err != nil {
		return fmt.Errorf("compute stats: %w", err)
	}
	logger.Info("computed editor stats", "rows", len(rows), "windows", len(windows))

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	return stats.WriteCSV(w, rows)
}
