package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/sqlgridgo/internal/artifact"
	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
	"github.com/specialistvlad/sqlgridgo/internal/dag"
	"github.com/specialistvlad/sqlgridgo/internal/depmap"
	"github.com/specialistvlad/sqlgridgo/internal/executor"
	"github.com/specialistvlad/sqlgridgo/internal/runlayout"
	"github.com/specialistvlad/sqlgridgo/internal/warehouse"
)

// Run performs one batch run: snapshot and analyse the scripts, write the
// run artifacts, build the graph and execute it against the warehouse.
// It returns an error wrapping executor.ErrTaskFailed when any task failed.
func (a *App) Run(ctx context.Context) error {
	layout := runlayout.New(a.config.RunsDir, a.now())
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "run_id", layout.RunID)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "source", a.config.SourceDir, "runs_dir", layout.Root)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer func() { _ = a.closeHealthcheckServer(ctx) }()
	}

	a.progress.setPhase("analysing")
	res, err := depmap.Build(ctx, depmap.Options{
		SourceDir:   a.config.SourceDir,
		SnapshotDir: layout.SnapshotDir,
		Concurrency: a.config.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to build dependency map: %w", err)
	}
	logger.Info("📚 Dependency map built.", "scripts", len(res.Scripts), "snapshot", layout.SnapshotDir)
	for name, perr := range res.ParseErrors() {
		logger.Warn("Script dependencies unknown; it will run without waiting on other scripts.", "script", name, "error", perr)
	}

	if err := artifact.WriteDependencies(layout.DependenciesFile, res.Deps); err != nil {
		return err
	}
	if err := artifact.WriteMetadata(layout.MetadataFile, res.Metadata()); err != nil {
		return err
	}

	graph, err := dag.Build(ctx, res.Deps)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	if err := artifact.WriteGraph(layout.GraphFile, graph, a.config.GraphStyle); err != nil {
		return err
	}
	order, err := graph.Order()
	if err != nil {
		return fmt.Errorf("failed to order dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", graph.Len(), "order", strings.Join(order, ","))

	if a.config.DryRun {
		a.progress.setPhase("done")
		logger.Info("Dry run requested, execution skipped.", "graph", layout.GraphFile, "dependencies", layout.DependenciesFile)
		return nil
	}
	if len(res.Scripts) == 0 {
		a.progress.setPhase("done")
		logger.Warn("No scripts found, execution not required.", "source", a.config.SourceDir)
		return nil
	}

	a.progress.setPhase("connecting")
	db, err := a.openDB(ctx, a.config.Warehouse)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runner := warehouse.NewRunner(db, res.Paths())
	exec := executor.New(graph, runner.Execute, executor.Options{
		Workers:     a.config.Workers,
		Policy:      a.config.OnFailure,
		TaskTimeout: a.config.TaskTimeout,
		OnResolve:   a.onResolve(ctx),
	})

	a.progress.start(graph.Len())
	logger.Info("🚀 Starting concurrent execution...", "nodes", graph.Len(), "workers", a.config.Workers, "on_failure", a.config.OnFailure)
	report, err := exec.Run(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.report = report
	a.progress.setPhase("done")
	logger.Info("🏁 Execution finished.",
		"succeeded", report.Count(executor.Succeeded),
		"failed", report.Count(executor.Failed),
		"no_script", report.Count(executor.NoScript),
		"skipped", report.Count(executor.Skipped),
		"duration", report.Finished.Sub(report.Started),
	)

	if err := artifact.WriteReport(layout.ReportFile, artifact.NewRunReport(layout.RunID, report, res.ParseErrors())); err != nil {
		return err
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d scripts failed: %w", len(failed), len(res.Scripts), report.Err())
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted, %d scripts skipped: %w", report.Count(executor.Skipped), err)
	}
	logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) onResolve(ctx context.Context) func(executor.Outcome, int, int) {
	logger := ctxlog.FromContext(ctx)
	return func(o executor.Outcome, resolved, total int) {
		a.progress.update(resolved, o.Status == executor.Failed)
		args := []any{"node", o.Name, "status", o.Status, "progress", fmt.Sprintf("%d/%d", resolved, total)}
		switch o.Status {
		case executor.Failed:
			logger.Error("❌ Script failed.", append(args, "error", o.Err)...)
		case executor.Succeeded:
			logger.Info("✅ Script succeeded.", append(args, "duration", o.Duration())...)
		default:
			logger.Debug("Node resolved.", args...)
		}
	}
}
