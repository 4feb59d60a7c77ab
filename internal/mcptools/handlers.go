package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wikimetrics/editnet/internal/editstore"
	"github.com/wikimetrics/editnet/internal/netstore"
	"github.com/wikimetrics/editnet/internal/network"
)

// Service holds the edit and network stores used by MCP tool handlers.
type Service struct {
	edits editstore.Store
	nets  netstore.Store
}

// NewService creates a Service over the given stores.
func NewService(edits editstore.Store, nets netstore.Store) *Service {
	return &Service{edits: edits, nets: nets}
}

// ImportEdits loads an edit history CSV into the edit store.
func (s *Service) ImportEdits(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportEditsInput,
) (*mcp.CallToolResult, ImportEditsOutput, error) {
	if input.CSVPath == "" {
		return nil, ImportEditsOutput{}, fmt.Errorf("csvPath is required")
	}

	records, err := editstore.ReadEditsFile(input.CSVPath)
	if err != nil {
		return nil, ImportEditsOutput{}, fmt.Errorf("read csv: %w", err)
	}

	if err := s.edits.InitSchema(ctx); err != nil {
		return nil, ImportEditsOutput{}, fmt.Errorf("init schema: %w", err)
	}
	for _, r := range records {
		if err := s.edits.AddEdit(ctx, r); err != nil {
			return nil, ImportEditsOutput{}, fmt.Errorf("add edit: %w", err)
		}
	}

	stats, err := s.edits.Stats(ctx)
	if err != nil {
		return nil, ImportEditsOutput{}, fmt.Errorf("stats: %w", err)
	}
	return nil, ImportEditsOutput{Imported: len(records), Stats: *stats}, nil
}

// BuildNetwork builds a network from the stored edits and saves it under
// the given name.
func (s *Service) BuildNetwork(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildNetworkInput,
) (*mcp.CallToolResult, BuildNetworkOutput, error) {
	if input.Name == "" {
		return nil, BuildNetworkOutput{}, fmt.Errorf("name is required")
	}

	opts := network.Options{
		Type:          network.NetworkType(input.NetworkType),
		EditLimit:     input.EditLimit,
		EditorLimit:   input.EditorLimit,
		TimeLimit:     time.Duration(input.TimeLimitDays) * 24 * time.Hour,
		SectionFilter: input.SectionFilter,
	}
	if !opts.Type.Valid() {
		return nil, BuildNetworkOutput{}, fmt.Errorf("%w (got %q)", network.ErrInvalidNetworkType, input.NetworkType)
	}

	from, err := parseBound(input.From)
	if err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("parse from: %w", err)
	}
	to, err := parseBound(input.To)
	if err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("parse to: %w", err)
	}

	edits, err := s.edits.AllEdits(ctx, from, to)
	if err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("load edits: %w", err)
	}

	g, err := network.Build(edits, opts)
	if err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("build network: %w", err)
	}

	meta := netstore.NetworkMeta{Name: input.Name, Type: opts.Type}
	if err := s.nets.InitSchema(ctx); err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("init schema: %w", err)
	}
	if err := s.nets.SaveNetwork(ctx, meta, g); err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("save network: %w", err)
	}

	saved, _, err := s.nets.LoadNetwork(ctx, input.Name)
	if err != nil {
		return nil, BuildNetworkOutput{}, fmt.Errorf("load network: %w", err)
	}
	return nil, BuildNetworkOutput{Meta: *saved}, nil
}

// NetworkStats returns graph-level metrics for a stored network.
func (s *Service) NetworkStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NetworkStatsInput,
) (*mcp.CallToolResult, NetworkStatsOutput, error) {
	meta, g, err := s.loadNetwork(ctx, input.Name)
	if err != nil {
		return nil, NetworkStatsOutput{}, err
	}

	out := NetworkStatsOutput{Meta: *meta}
	if avg, err := g.AverageWeight(); err == nil {
		out.AverageWeight = &avg
	} else if !errors.Is(err, network.ErrEmptyGraph) {
		return nil, NetworkStatsOutput{}, fmt.Errorf("average weight: %w", err)
	}
	if g.Directed() {
		ratio, defined, err := g.Hierarchy()
		if err != nil {
			return nil, NetworkStatsOutput{}, fmt.Errorf("hierarchy: %w", err)
		}
		if defined {
			out.Hierarchy = &ratio
		}
	}
	return nil, out, nil
}

// EditorMetrics returns per-editor metrics within a stored network.
func (s *Service) EditorMetrics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditorMetricsInput,
) (*mcp.CallToolResult, EditorMetricsOutput, error) {
	if input.Editor == "" {
		return nil, EditorMetricsOutput{}, fmt.Errorf("editor is required")
	}
	_, g, err := s.loadNetwork(ctx, input.Name)
	if err != nil {
		return nil, EditorMetricsOutput{}, err
	}
	if !g.HasVertex(input.Editor) {
		return nil, EditorMetricsOutput{}, fmt.Errorf("editor %q not in network %q", input.Editor, input.Name)
	}

	out := EditorMetricsOutput{
		Editor: input.Editor,
		Degree: len(g.Neighbors(input.Editor)),
	}
	vals, err := g.BetweennessAll([]string{input.Editor}, true)
	switch {
	case errors.Is(err, network.ErrDegenerateGraph):
		// too small to normalize, leave absent
	case err != nil:
		return nil, EditorMetricsOutput{}, fmt.Errorf("betweenness: %w", err)
	default:
		out.Betweenness = &vals[0]
	}
	es, err := g.EffectiveSize(input.Editor)
	switch {
	case errors.Is(err, network.ErrIsolatedVertex):
		// isolated editors have no effective size
	case err != nil:
		return nil, EditorMetricsOutput{}, fmt.Errorf("effective size: %w", err)
	default:
		out.EffectiveSize = &es
	}
	return nil, out, nil
}

func (s *Service) loadNetwork(ctx context.Context, name string) (*netstore.NetworkMeta, *network.Graph, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("name is required")
	}
	meta, g, err := s.nets.LoadNetwork(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("load network: %w", err)
	}
	if meta == nil {
		return nil, nil, fmt.Errorf("no network named %q", name)
	}
	return meta, g, nil
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return network.ParseTimestamp(s)
}
