package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/wikimetrics/editnet/internal/config"
	"github.com/wikimetrics/editnet/internal/editstore"
)

// version is set by goreleaser at build time.
var version = "dev"

const usage = `usage: editnet <command> [flags]

Commands:
  import          load an edit history CSV into the edit database
  build           build an editor network from the edit database
  stats           compute per-editor statistics over time windows
  merge-clusters  join external cluster labels onto a stats table
  export          export a stored network as JSON, edge list or Mermaid
  serve-mcp       run the MCP tool server

Global flags:
  -version        print version and exit
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	if args[0] == "-version" || args[0] == "--version" {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.Verbose)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "import":
		return runImport(logger, cfg, rest)
	case "build":
		return runBuild(logger, cfg, rest)
	case "stats":
		return runStats(logger, cfg, rest)
	case "merge-clusters":
		return runMergeClusters(logger, rest)
	case "export":
		return runExport(logger, cfg, rest)
	case "serve-mcp":
		return runServeMCP(logger, cfg, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// resolveDB falls back to the default database path when neither the flag
// nor the config names one.
func resolveDB(path string) string {
	if path == "" {
		return "editnet.db"
	}
	return path
}

func openEditStore(path string) (*editstore.SQLiteStore, error) {
	store, err := editstore.NewSQLiteStore(resolveDB(path))
	if err != nil {
		return nil, fmt.Errorf("open edit database: %w", err)
	}
	return store, nil
}
