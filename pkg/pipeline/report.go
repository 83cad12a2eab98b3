package pipeline

import (
	"time"

	"github.com/dd0wney/orggraph/pkg/graph"
)

// RunReport summarizes one full rebuild for logging, metrics, and callers
type RunReport struct {
	RunID          string          `json:"run_id"`
	SourceRows     map[string]int  `json:"source_rows"`
	SkippedSources []string        `json:"skipped_sources,omitempty"`
	SkippedMerges  []string        `json:"skipped_merges,omitempty"`
	CellsDegraded  int             `json:"cells_degraded"`
	Stats          graph.Stats     `json:"stats"`
	ShadowCreated  int             `json:"shadow_created"`
	EdgesAdded     int             `json:"edges_added"`
	EdgesDropped   int             `json:"edges_dropped"`
	SnapshotBytes  int64           `json:"snapshot_bytes"`
	Duration       time.Duration   `json:"duration"`
}
