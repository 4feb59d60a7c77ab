package mcptools

import (
	"github.com/wikimetrics/editnet/internal/editstore"
	"github.com/wikimetrics/editnet/internal/netstore"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ImportEditsInput is the input for the import_edits MCP tool.
type ImportEditsInput struct {
	CSVPath string `json:"csvPath" jsonschema:"the absolute path to the edit history CSV file to import"`
}

// ImportEditsOutput is the result of the import_edits MCP tool.
type ImportEditsOutput struct {
	Imported int                  `json:"imported"`
	Stats    editstore.StoreStats `json:"stats"`
}

// BuildNetworkInput is the input for the build_network MCP tool.
type BuildNetworkInput struct {
	Name          string `json:"name" jsonschema:"name to store the built network under"`
	NetworkType   string `json:"networkType" jsonschema:"network type: coedit, collaboration or talk"`
	EditLimit     int    `json:"editLimit,omitempty" jsonschema:"cap on prior edits considered per page (0 = unlimited)"`
	EditorLimit   int    `json:"editorLimit,omitempty" jsonschema:"cap on distinct prior editors tied per edit (0 = unlimited)"`
	TimeLimitDays int    `json:"timeLimitDays,omitempty" jsonschema:"only tie to edits at most this many days older (0 = unlimited)"`
	SectionFilter bool   `json:"sectionFilter,omitempty" jsonschema:"only tie edits that touched the same page section"`
	From          string `json:"from,omitempty" jsonschema:"inclusive lower timestamp bound, format 2006-01-02 15:04:05"`
	To            string `json:"to,omitempty" jsonschema:"exclusive upper timestamp bound, format 2006-01-02 15:04:05"`
}

// BuildNetworkOutput is the result of the build_network MCP tool.
type BuildNetworkOutput struct {
	Meta netstore.NetworkMeta `json:"meta"`
}

// NetworkStatsInput is the input for the network_stats MCP tool.
type NetworkStatsInput struct {
	Name string `json:"name" jsonschema:"name of a previously built network"`
}

// NetworkStatsOutput is the result of the network_stats MCP tool.
// Hierarchy is only present for directed networks, and AverageWeight only
// when the network has at least one tie.
type NetworkStatsOutput struct {
	Meta          netstore.NetworkMeta `json:"meta"`
	AverageWeight *float64             `json:"averageWeight,omitempty"`
	Hierarchy     *float64             `json:"hierarchy,omitempty"`
}

// EditorMetricsInput is the input for the editor_metrics MCP tool.
type EditorMetricsInput struct {
	Name   string `json:"name" jsonschema:"name of a previously built network"`
	Editor string `json:"editor" jsonschema:"editor identifier to compute metrics for"`
}

// EditorMetricsOutput is the result of the editor_metrics MCP tool.
// Metric pointers are nil when the value is undefined for this editor.
type EditorMetricsOutput struct {
	Editor        string   `json:"editor"`
	Degree        int      `json:"degree"`
	Betweenness   *float64 `json:"betweenness,omitempty"`
	EffectiveSize *float64 `json:"effectiveSize,omitempty"`
}
