package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/stats"
)

func runMergeClusters(logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("merge-clusters", flag.ContinueOnError)
	out := fs.String("out", "", "write the merged CSV to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: editnet merge-clusters [flags] <stats.csv> <clusters.csv>")
	}

	statsFile, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open %s: %w", fs.Arg(0), err)
	}
	defer statsFile.Close()
	table, err := stats.ReadTable(statsFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", fs.Arg(0), err)
	}

	clusterFile, err := os.Open(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("open %s: %w", fs.Arg(1), err)
	}
	defer clusterFile.Close()
	assignments, err := stats.ReadClusterAssignments(clusterFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", fs.Arg(1), err)
	}

	merged, err := stats.MergeClusterAssignments(table, assignments)
	if err != nil {
		return err
	}
	logger.Info("merged cluster labels", "rows", len(merged)-1, "assignments", len(assignments))

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	return stats.WriteTable(w, merged)
}
