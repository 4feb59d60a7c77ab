package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/config"
	"github.com/wikimetrics/editnet/internal/export"
)

func runExport(logger *log.Logger, cfg *config.ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	netDB := fs.String("netdb", "networks.kuzu", "path to the network store")
	format := fs.String("format", "json", "output format: json, edgelist or mermaid")
	maxEdges := fs.Int("max-edges", 50, "strongest ties kept in mermaid output (0 = all)")
	out := fs.String("out", "", "write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: editnet export [flags] <name>")
	}
	name := fs.Arg(0)

	ctx := context.Background()
	nets, err := openNetStore(*netDB)
	if err != nil {
		return err
	}
	defer nets.Close()

	meta, g, err := nets.LoadNetwork(ctx, name)
	if err != nil {
		return fmt.Errorf("load network: %w", err)
	}
	if meta == nil {
		return fmt.Errorf("no network named %q in %s", name, *netDB)
	}
	logger.Debug("loaded network", "name", name, "vertices", meta.VertexCount, "edges", meta.EdgeCount)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "json":
		return export.WriteJSON(w, export.BuildExport(name, meta.Type, g))
	case "edgelist":
		return export.WriteEdgeList(w, g)
	case "mermaid":
		_, err := fmt.Fprint(w, export.GenerateMermaid(g, *maxEdges))
		return err
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
