// Package pipeline runs the load, aggregate, rank and export stages for one input file.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/dbsmedya/golaps/internal/aggregator"
	"github.com/dbsmedya/golaps/internal/config"
	"github.com/dbsmedya/golaps/internal/exporter"
	"github.com/dbsmedya/golaps/internal/loader"
	"github.com/dbsmedya/golaps/internal/logger"
	"github.com/dbsmedya/golaps/internal/ranker"
	"github.com/dbsmedya/golaps/internal/types"
	"github.com/dbsmedya/golaps/internal/verifier"
)

// Stage names used in log fields.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageRank      = "rank"
	StageExport    = "export"
	StageVerify    = "verify"
)

// Result contains the outcome and timings of a run.
type Result struct {
	InputPath    string
	StartedAt    time.Time
	CompletedAt  time.Time
	Duration     time.Duration
	Output       types.PipelineResult
	Report       *exporter.Report
	Verification *verifier.VerifyStats
	Success      bool
}

// Pipeline executes runs against one configuration. It holds no state between runs.
type Pipeline struct {
	config   *config.Config
	logger   *logger.Logger
	verifier *verifier.Verifier
}

// New creates a pipeline. A nil logger falls back to the default stderr logger.
func New(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	v, err := verifier.NewVerifier(verifier.VerificationMethod(cfg.Verification.Method), log.WithStage(StageVerify))
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	return &Pipeline{
		config:   cfg,
		logger:   log,
		verifier: v,
	}, nil
}

// Rules returns the dataset rules derived from the validation config.
func (p *Pipeline) Rules() loader.Rules {
	return loader.Rules{
		MinDrivers:       p.config.Validation.MinDrivers,
		MinLapsPerDriver: p.config.Validation.MinLapsPerDriver,
	}
}

// Extract reads and validates the configured input file.
func (p *Pipeline) Extract(ctx context.Context) ([]types.LapRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := p.config.Input.Path
	log := p.logger.WithStage(StageLoad).WithFile(path).WithFields(map[string]interface{}{
		"min_drivers":         p.config.Validation.MinDrivers,
		"min_laps_per_driver": p.config.Validation.MinLapsPerDriver,
	})
	log.Debug("Reading lap times")

	records, err := loader.Load(path, p.Rules())
	if err != nil {
		log.Errorw("Input rejected", "error", err)
		return nil, err
	}

	log.Infow("Input loaded", "laps", len(records))
	return records, nil
}

// Transform aggregates records per driver and ranks the top N.
func (p *Pipeline) Transform(ctx context.Context, records []types.LapRecord) (types.PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return types.PipelineResult{}, err
	}

	stats, err := aggregator.Aggregate(records)
	if err != nil {
		p.logger.WithStage(StageAggregate).Errorw("Aggregation failed", "error", err)
		return types.PipelineResult{}, fmt.Errorf("aggregate: %w", err)
	}
	p.logger.WithStage(StageAggregate).Debugw("Laps grouped",
		"drivers", stats.Len(),
		"laps", stats.TotalLaps(),
	)

	if err := ctx.Err(); err != nil {
		return types.PipelineResult{}, err
	}

	top, err := ranker.Rank(stats.Values(), p.config.Ranking.TopN)
	if err != nil {
		p.logger.WithStage(StageRank).Errorw("Ranking failed", "error", err)
		return types.PipelineResult{}, fmt.Errorf("rank: %w", err)
	}

	if len(top) > 0 {
		p.logger.WithStage(StageRank).Infow("Drivers ranked",
			"top_n", p.config.Ranking.TopN,
			"ranked", len(top),
			"leader", top[0].Driver,
			"leader_average", exporter.Round3(top[0].AverageTime),
		)
	}

	output := types.NewPipelineResult(top, stats.Len(), stats.TotalLaps())
	p.logger.WithStage(StageRank).Debugw("Top drivers", "drivers", output.Drivers())
	return output, nil
}

// Run executes every stage. Loader failures return before any file is written.
// When the export fails for one artifact the other is still written and verified,
// and the returned error describes every failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &Result{
		InputPath: p.config.Input.Path,
		StartedAt: time.Now(),
	}
	defer func() {
		result.CompletedAt = time.Now()
		result.Duration = result.CompletedAt.Sub(result.StartedAt)
	}()

	p.logger.Infow("Starting analysis",
		"input", p.config.Input.Path,
		"output_dir", p.config.Output.Dir,
		"top_n", p.config.Ranking.TopN,
		"verification_method", p.verifier.Method(),
	)

	records, err := p.Extract(ctx)
	if err != nil {
		return result, err
	}

	output, err := p.Transform(ctx, records)
	if err != nil {
		return result, err
	}
	result.Output = output

	if err := ctx.Err(); err != nil {
		return result, err
	}

	report := p.export(output)
	result.Report = report

	stats, verr := p.verifier.Verify(output, report.Artifacts())
	result.Verification = stats

	if err := multierr.Combine(report.Err(), verr); err != nil {
		return result, err
	}

	result.Success = true
	p.logger.Infow("Analysis complete",
		"drivers", output.TotalDriversAnalyzed,
		"laps", output.TotalLapsAnalyzed,
		"csv", report.CSV.Path,
		"json", report.JSON.Path,
		"duration", time.Since(result.StartedAt),
	)
	return result, nil
}

func (p *Pipeline) export(output types.PipelineResult) *exporter.Report {
	csvPath, jsonPath := p.config.OutputPaths()
	report := exporter.Export(output, exporter.Targets{
		CSVPath:  csvPath,
		JSONPath: jsonPath,
	})

	log := p.logger.WithStage(StageExport)
	for _, a := range report.Artifacts() {
		if a.OK() {
			log.Infow("Artifact written", "artifact", a.Kind, "file", a.Path)
			continue
		}
		log.Errorw("Artifact failed", "artifact", a.Kind, "file", a.Path, "error", a.Err)
	}
	if report.Partial() {
		log.Warn("Export partially succeeded")
	}
	return report
}
