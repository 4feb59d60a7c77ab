package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMCPServer creates an MCP server with all 4 edit network tools registered.
func NewMCPServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "editnet",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_edits",
		Description: "Import a Wikipedia edit history CSV into the edit store. Rows carry editor, page id, namespace, title, comment and timestamp; the store keeps them grouped by page in timestamp order.",
	}, svc.ImportEdits)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_network",
		Description: "Build a weighted editor network (coedit, collaboration or talk) from the imported edit stream and store it under a name. Window limits control how far back on each page an edit reaches for ties.",
	}, svc.BuildNetwork)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "network_stats",
		Description: "Return graph-level statistics for a stored network: vertex and edge counts, average tie weight, and (for directed networks) the Krackhardt hierarchy score.",
	}, svc.NetworkStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "editor_metrics",
		Description: "Return per-editor metrics within a stored network: degree, normalized betweenness centrality, and Burt effective size.",
	}, svc.EditorMetrics)

	return server
}

// RunMCPServer starts an HTTP server exposing the edit network MCP tools.
func RunMCPServer(ctx context.Context, svc *Service, addr string) error {
	server := NewMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
