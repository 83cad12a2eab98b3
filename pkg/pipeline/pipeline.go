// Package pipeline orchestrates the full rebuild: normalize, clean, merge,
// persist canonical tables, build a brand-new graph, and atomically swap it
// into the served handle. The whole run is single-threaded and batch; the
// only fatal condition is a completely empty canonical-table set.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/orggraph/pkg/canonical"
	"github.com/dd0wney/orggraph/pkg/clean"
	"github.com/dd0wney/orggraph/pkg/config"
	"github.com/dd0wney/orggraph/pkg/graph"
	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/merge"
	"github.com/dd0wney/orggraph/pkg/metrics"
	"github.com/dd0wney/orggraph/pkg/snapshot"
	"github.com/dd0wney/orggraph/pkg/table"
)

// ErrNoSources is the single fatal error of the core: no usable source data
// reached the canonical store, so a rebuild would serve an empty graph.
var ErrNoSources = errors.New("no usable source data: canonical table set is empty")

// Source kinds the pipeline recognizes, keying the Sources map
const (
	SourceEmployees           = "employees"
	SourceCourseParticipation = "course_participation"
	SourceQualifications      = "qualifications"
	SourceOrgStructure        = "org_structure"
	SourceSkillDictionary     = "skill_dictionary"
	SourceSkillMapping        = "skill_mapping"
	SourceRoleQualifications  = "role_qualifications"
	SourceLearningEvents      = "learning_events"
	SourceLearningCatalog     = "learning_catalog"
)

// SourceKinds lists every recognized source kind
var SourceKinds = []string{
	SourceEmployees,
	SourceCourseParticipation,
	SourceQualifications,
	SourceOrgStructure,
	SourceSkillDictionary,
	SourceSkillMapping,
	SourceRoleQualifications,
	SourceLearningEvents,
	SourceLearningCatalog,
}

// Sources maps source kind to its already-parsed raw table. Producing these
// from spreadsheet files is the ingestion collaborator's job.
type Sources map[string]*table.Table

// Pipeline wires the ETL stages, the canonical store, and the graph handle
type Pipeline struct {
	cfg     *config.Config
	store   *canonical.Store
	handle  *graph.Handle
	log     logging.Logger
	metrics *metrics.Registry
	cleaner *clean.Cleaner
	merger  *merge.Merger
}

// New creates a pipeline. The handle is what query-serving collaborators
// hold; each successful run swaps a freshly built graph into it.
func New(cfg *config.Config, store *canonical.Store, handle *graph.Handle, log logging.Logger, reg *metrics.Registry) *Pipeline {
	if log == nil {
		log = logging.DefaultLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Pipeline{
		cfg:     cfg,
		store:   store,
		handle:  handle,
		log:     log,
		metrics: reg,
		cleaner: clean.NewCleaner(log),
		merger:  merge.NewMerger(log),
	}
}

// Run executes a full rebuild from the given sources. Sources that are
// missing or nil are skipped with a warning; the run produces the best graph
// obtainable from whatever survives. Returns ErrNoSources when nothing does.
func (p *Pipeline) Run(ctx context.Context, sources Sources) (*RunReport, error) {
	start := time.Now()
	report := &RunReport{
		RunID:      uuid.NewString(),
		SourceRows: make(map[string]int),
	}
	log := p.log.With(logging.RunID(report.RunID))
	log.Info("rebuild started")

	cleaned := p.cleanSources(ctx, log, sources, report)
	p.mergeViews(ctx, log, cleaned, report)

	names, err := p.store.Names(ctx)
	if err != nil {
		p.metrics.RebuildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to inspect canonical store: %w", err)
	}
	if len(names) == 0 {
		p.metrics.RebuildsTotal.WithLabelValues("error").Inc()
		return nil, ErrNoSources
	}

	g, builder := p.buildGraph(ctx, log)
	report.Stats = g.Stats()
	report.ShadowCreated = builder.ShadowCreated
	report.EdgesAdded = builder.EdgesAdded
	report.EdgesDropped = builder.EdgesDropped

	p.handle.Swap(g)

	if err := p.saveSnapshot(g, report); err != nil {
		// The new graph is already serving; a failed snapshot only costs
		// the next process a cold rebuild.
		log.Error("snapshot save failed", logging.Error(err))
	}

	report.Duration = time.Since(start)
	p.observe(report)
	log.Info("rebuild complete",
		logging.Int("nodes", report.Stats.NodeCount),
		logging.Int("edges", report.Stats.EdgeCount),
		logging.Int("shadow", report.Stats.ShadowCount),
		logging.Duration("duration", report.Duration))
	return report, nil
}

// cleanSources normalizes and cleans every available source, persisting the
// canonical result. Returns the cleaned tables keyed by source kind.
func (p *Pipeline) cleanSources(ctx context.Context, log logging.Logger, sources Sources, report *RunReport) map[string]*table.Table {
	cleaned := make(map[string]*table.Table, len(SourceKinds))
	p.cleaner.ResetDegraded()

	for _, kind := range SourceKinds {
		raw, ok := sources[kind]
		if !ok || raw == nil {
			log.Warn("source unavailable, skipping", logging.Source(kind))
			report.SkippedSources = append(report.SkippedSources, kind)
			p.metrics.SourcesSkipped.Inc()
			continue
		}

		t := raw.Clone()
		table.NormalizeColumns(t)
		out := p.cleanOne(kind, t)

		cleaned[kind] = out
		report.SourceRows[kind] = out.NumRows()
		p.metrics.RowsCleaned.WithLabelValues(kind).Add(float64(out.NumRows()))

		if err := p.store.Put(ctx, kind, out); err != nil {
			log.Error("failed to persist canonical table",
				logging.Source(kind), logging.Error(err))
		}
	}

	report.CellsDegraded = p.cleaner.Degraded()
	p.metrics.CellsDegraded.Add(float64(report.CellsDegraded))
	return cleaned
}

// cleanOne dispatches to the per-entity cleaner for a source kind
func (p *Pipeline) cleanOne(kind string, t *table.Table) *table.Table {
	aliases := p.cfg.SourceAliases(kind)
	switch kind {
	case SourceEmployees:
		return p.cleaner.Employees(t, aliases)
	case SourceCourseParticipation:
		return p.cleaner.CourseParticipation(t, aliases)
	case SourceQualifications:
		return p.cleaner.Qualifications(t, aliases)
	case SourceOrgStructure:
		return p.cleaner.OrgStructure(t, aliases)
	case SourceSkillDictionary:
		return p.cleaner.SkillDictionary(t, aliases)
	case SourceSkillMapping:
		return p.cleaner.SkillMapping(t, aliases)
	case SourceRoleQualifications:
		return p.cleaner.RoleQualifications(t, aliases)
	case SourceLearningEvents:
		return p.cleaner.LearningEvents(t, aliases)
	case SourceLearningCatalog:
		return p.cleaner.LearningCatalog(t, aliases)
	default:
		return t
	}
}

// mergeViews derives and persists the best-effort merge views
func (p *Pipeline) mergeViews(ctx context.Context, log logging.Logger, cleaned map[string]*table.Table, report *RunReport) {
	p.merger.ResetSkipped()

	profile := p.merger.LearningProfile(
		cleaned[SourceEmployees], cleaned[SourceCourseParticipation])
	matrix := p.merger.SkillsMatrix(
		cleaned[SourceSkillMapping], cleaned[SourceSkillDictionary])
	compliance := p.merger.ComplianceTracking(
		cleaned[SourceEmployees], cleaned[SourceQualifications],
		cleaned[SourceRoleQualifications])
	unified := p.merger.Unified(profile, matrix)

	views := map[string]*table.Table{
		canonical.TableLearningProfile: profile,
		canonical.TableSkillsMatrix:    matrix,
		canonical.TableCompliance:      compliance,
		canonical.TableUnified:         unified,
	}
	for name, view := range views {
		if view == nil {
			continue
		}
		if err := p.store.Put(ctx, name, view); err != nil {
			log.Error("failed to persist merge view",
				logging.TableName(name), logging.Error(err))
		}
	}

	report.SkippedMerges = append(report.SkippedMerges, p.merger.Skipped()...)
	for _, view := range p.merger.Skipped() {
		p.metrics.MergesSkipped.WithLabelValues(view).Inc()
	}
}

// buildGraph constructs a brand-new graph from the canonical store in the
// recommended loader order. Absent tables just contribute nothing.
func (p *Pipeline) buildGraph(ctx context.Context, log logging.Logger) (*graph.Graph, *graph.Builder) {
	timer := logging.StartTimer(log, "graph build")
	builder := graph.NewBuilder(p.cfg.GraphEdgePolicy(), log)

	builder.AddEmployees(p.fetch(ctx, log, canonical.TableEmployees))
	builder.AddSkills(p.fetch(ctx, log, canonical.TableSkillDictionary))
	builder.AddQualifications(p.fetch(ctx, log, canonical.TableQualifications))
	builder.AddCourseParticipation(p.fetch(ctx, log, canonical.TableCourseParticipation))
	builder.AddLearningCatalog(p.fetch(ctx, log, canonical.TableLearningCatalog))
	builder.AddSkillMappings(p.fetch(ctx, log, canonical.TableSkillsMatrix))
	builder.AddRoleRequirements(p.fetch(ctx, log, canonical.TableRoleQualifications))
	builder.AddOrgHierarchy(p.fetch(ctx, log, canonical.TableOrgStructure))

	timer.End()
	return builder.Graph(), builder
}

// fetch reads a canonical table, treating absence as an empty contribution
func (p *Pipeline) fetch(ctx context.Context, log logging.Logger, name string) *table.Table {
	t, err := p.store.Get(ctx, name)
	if errors.Is(err, canonical.ErrTableNotFound) {
		return nil
	}
	if err != nil {
		log.Warn("failed to read canonical table",
			logging.TableName(name), logging.Error(err))
		return nil
	}
	return t
}

// saveSnapshot persists the freshly built graph and records its size
func (p *Pipeline) saveSnapshot(g *graph.Graph, report *RunReport) error {
	start := time.Now()
	err := snapshot.Save(g, p.cfg.SnapshotPath)
	p.metrics.SnapshotDuration.WithLabelValues("save").Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.SnapshotOpsTotal.WithLabelValues("save", "error").Inc()
		return err
	}
	p.metrics.SnapshotOpsTotal.WithLabelValues("save", "ok").Inc()
	if info, statErr := os.Stat(p.cfg.SnapshotPath); statErr == nil {
		report.SnapshotBytes = info.Size()
		p.metrics.SnapshotBytes.Set(float64(info.Size()))
	}
	return nil
}

// observe pushes the run report into the metrics registry
func (p *Pipeline) observe(report *RunReport) {
	nodesByKind := make(map[string]int, len(report.Stats.NodesByKind))
	for kind, n := range report.Stats.NodesByKind {
		nodesByKind[string(kind)] = n
	}
	edgesByKind := make(map[string]int, len(report.Stats.EdgesByKind))
	for kind, n := range report.Stats.EdgesByKind {
		edgesByKind[string(kind)] = n
	}
	p.metrics.ObserveGraph(nodesByKind, edgesByKind, report.Stats.ShadowCount)
	p.metrics.RebuildDuration.Observe(report.Duration.Seconds())
	p.metrics.RebuildsTotal.WithLabelValues("ok").Inc()
}

// Bootstrap loads the persisted snapshot into the handle, the fast path for
// a query-serving process start. An absent snapshot leaves an empty graph.
func (p *Pipeline) Bootstrap() error {
	start := time.Now()
	g, err := snapshot.Load(p.cfg.SnapshotPath)
	p.metrics.SnapshotDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.SnapshotOpsTotal.WithLabelValues("load", "error").Inc()
		return fmt.Errorf("failed to bootstrap from snapshot: %w", err)
	}
	p.metrics.SnapshotOpsTotal.WithLabelValues("load", "ok").Inc()
	p.handle.Swap(g)
	return nil
}
