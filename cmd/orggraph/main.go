package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dd0wney/orggraph/pkg/canonical"
	"github.com/dd0wney/orggraph/pkg/config"
	"github.com/dd0wney/orggraph/pkg/graph"
	"github.com/dd0wney/orggraph/pkg/logging"
	"github.com/dd0wney/orggraph/pkg/metrics"
	"github.com/dd0wney/orggraph/pkg/pipeline"
	"github.com/dd0wney/orggraph/pkg/table"
)

// orggraph runs one batch rebuild: parsed source tables in, canonical store
// and graph snapshot out. Flag handling is deliberately minimal; richer
// CLIs belong to the serving collaborator.
func main() {
	log := logging.NewDefaultLogger()

	cfgPath := os.Getenv("ORGGRAPH_CONFIG")
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	if cfgPath == "" {
		cfgPath = "orggraph.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("failed to load config", logging.Error(err))
		os.Exit(1)
	}
	log.SetLevel(cfg.LoggingLevel())

	store, err := canonical.New(cfg.CanonicalDBPath)
	if err != nil {
		log.Error("failed to open canonical store", logging.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	handle := graph.NewHandle(nil)
	p := pipeline.New(cfg, store, handle, log, metrics.NewRegistry())

	sources := loadSources(cfg.SourceDir, log)
	report, err := p.Run(context.Background(), sources)
	if err != nil {
		log.Error("rebuild failed", logging.Error(err))
		os.Exit(1)
	}

	log.Info("done",
		logging.RunID(report.RunID),
		logging.Int("nodes", report.Stats.NodeCount),
		logging.Int("edges", report.Stats.EdgeCount))
}

// loadSources reads one JSON table file per recognized source kind from dir.
// Absent files simply leave that source out; the pipeline handles the rest.
func loadSources(dir string, log logging.Logger) pipeline.Sources {
	sources := make(pipeline.Sources)
	if dir == "" {
		return sources
	}
	for _, kind := range pipeline.SourceKinds {
		path := filepath.Join(dir, kind+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var t table.Table
		if err := json.Unmarshal(data, &t); err != nil {
			log.Warn("failed to parse source table",
				logging.Source(kind), logging.Error(err))
			continue
		}
		sources[kind] = &t
	}
	return sources
}
