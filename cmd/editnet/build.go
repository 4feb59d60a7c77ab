package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/config"
	"github.com/wikimetrics/editnet/internal/export"
	"github.com/wikimetrics/editnet/internal/netstore"
	"github.com/wikimetrics/editnet/internal/network"
)

func runBuild(logger *log.Logger, cfg *config.ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to the edit database")
	netType := fs.String("type", cfg.NetworkType, "network type: coedit, collaboration or talk")
	editLimit := fs.Int("edit-limit", cfg.EditLimit, "cap on prior edits considered per page (0 = unlimited)")
	editorLimit := fs.Int("editor-limit", cfg.EditorLimit, "cap on distinct prior editors tied per edit (0 = unlimited)")
	timeLimitDays := fs.Int("time-limit-days", cfg.TimeLimitDays, "only tie to edits at most this many days older (0 = unlimited)")
	sectionFilter := fs.Bool("section-filter", cfg.SectionFilter, "only tie edits that touched the same page section")
	from := fs.String("from", "", "inclusive lower timestamp bound (2006-01-02 15:04:05)")
	to := fs.String("to", "", "exclusive upper timestamp bound (2006-01-02 15:04:05)")
	partitions := fs.Int("partitions", 1, "build page partitions concurrently")
	saveName := fs.String("save", "", "store the network under this name")
	netDB := fs.String("netdb", "networks.kuzu", "path to the network store (with -save)")
	out := fs.String("out", "", "write the edge list CSV to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := network.Options{
		Type:          network.NetworkType(*netType),
		EditLimit:     *editLimit,
		EditorLimit:   *editorLimit,
		TimeLimit:     time.Duration(*timeLimitDays) * 24 * time.Hour,
		SectionFilter: *sectionFilter,
	}
	if *netType == "" {
		opts.Type = network.Coedit
	}

	fromTS, toTS, err := parseBounds(*from, *to)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openEditStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	edits, err := store.AllEdits(ctx, fromTS, toTS)
	if err != nil {
		return fmt.Errorf("load edits: %w", err)
	}
	logger.Debug("loaded edits", "count", len(edits))

	var g *network.Graph
	if *partitions > 1 {
		g, err = network.BuildPartitions(ctx, network.PartitionByPage(edits, *partitions), opts)
	} else {
		g, err = network.Build(edits, opts)
	}
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}
	logger.Info("built network",
		"type", opts.Type,
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
	)

	if *saveName != "" {
		if err := saveNetwork(ctx, *netDB, *saveName, opts.Type, g); err != nil {
			return err
		}
		logger.Info("saved network", "name", *saveName, "netdb", *netDB)
		return nil
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	return export.WriteEdgeList(w, g)
}

func saveNetwork(ctx context.Context, netDB, name string, typ network.NetworkType, g *network.Graph) error {
	nets, err := openNetStore(netDB)
	if err != nil {
		return err
	}
	defer nets.Close()

	if err := nets.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := nets.SaveNetwork(ctx, netstore.NetworkMeta{Name: name, Type: typ}, g); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}

func parseBounds(from, to string) (time.Time, time.Time, error) {
	var fromTS, toTS time.Time
	var err error
	if from != "" {
		if fromTS, err = network.ParseTimestamp(from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse -from: %w", err)
		}
	}
	if to != "" {
		if toTS, err = network.ParseTimestamp(to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse -to: %w", err)
		}
	}
	return fromTS, toTS, nil
}
