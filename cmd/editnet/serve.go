package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/config"
	"github.com/wikimetrics/editnet/internal/mcptools"
	"github.com/wikimetrics/editnet/internal/netstore"
)

func runServeMCP(logger *log.Logger, cfg *config.ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("serve-mcp", flag.ContinueOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to the edit database")
	netDB := fs.String("netdb", "", "path to the network store (default: in-memory)")
	addr := fs.String("addr", "127.0.0.1:8321", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	edits, err := openEditStore(*dbPath)
	if err != nil {
		return err
	}
	defer edits.Close()

	// Built networks live only for the session unless a store path is given.
	var nets netstore.Store = netstore.NewMemStore()
	if *netDB != "" {
		if nets, err = openNetStore(*netDB); err != nil {
			return err
		}
	}
	defer nets.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("serving MCP tools", "addr", *addr)
	return mcptools.RunMCPServer(ctx, mcptools.NewService(edits, nets), *addr)
}
