// Package app implements the application layer for avert.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/avert/internal/engine/execution"
	"go.trai.ch/avert/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// OutputVerifier reports declared outputs that are missing on disk.
type OutputVerifier interface {
	MissingOutputs(root string, outputs []string) ([]string, error)
}

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	storage       ports.StorageProvider
	capturer      execution.StateCapturer
	fingerprinter ports.Fingerprinter
	telemetry     ports.Telemetry
	metrics       ports.Metrics
	logger        ports.Logger
	scheduler     *scheduler.Scheduler
	resolver      ports.PathResolver
	verifier      OutputVerifier

	workDir string
	clock   execution.Clock
}

// Dependencies are the collaborators of an App.
type Dependencies struct {
	ConfigLoader  ports.ConfigLoader
	Storage       ports.StorageProvider
	Capturer      execution.StateCapturer
	Fingerprinter ports.Fingerprinter
	Telemetry     ports.Telemetry
	Metrics       ports.Metrics
	Logger        ports.Logger
	Scheduler     *scheduler.Scheduler
	Resolver      ports.PathResolver
	Verifier      OutputVerifier
}

// New creates a new App instance.
func New(deps Dependencies) *App {
	return &App{
		configLoader:  deps.ConfigLoader,
		storage:       deps.Storage,
		capturer:      deps.Capturer,
		fingerprinter: deps.Fingerprinter,
		telemetry:     deps.Telemetry,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		scheduler:     deps.Scheduler,
		resolver:      deps.Resolver,
		verifier:      deps.Verifier,
		clock:         time.Now,
	}
}

// WithWorkDir sets the directory the project file is searched from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithClock replaces the pipeline clock. This is primarily used for testing.
func (a *App) WithClock(clock execution.Clock) *App {
	a.clock = clock
	return a
}

func (a *App) loadProject() (*domain.Project, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	project, err := a.configLoader.Load(abs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Rerun executes every selected task even when it is up to date.
	Rerun bool
	// NoCache bypasses the build cache.
	NoCache bool
	// MetricsFile receives the run's metrics in the Prometheus text format.
	MetricsFile string
}

// Run executes the specified targets and everything they depend on.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	// 1. Load the project
	project, err := a.loadProject()
	if err != nil {
		return err
	}

	// 2. Select targets
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}
	graph, err := project.Graph.Closure(targetNames)
	if err != nil {
		return err
	}

	// 3. Open storage
	history, err := a.storage.OpenHistory(project.Root, project.Settings.History)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := history.Close(); cerr != nil {
			a.logger.Warn("failed to close execution history: " + cerr.Error())
		}
	}()

	var cache ports.BuildCache
	if project.Settings.Cache && !opts.NoCache {
		if cache, err = a.storage.OpenCache(project.Root); err != nil {
			return err
		}
	}

	// 4. Run the graph through the pipeline
	pipeline := execution.NewPipeline(execution.Dependencies{
		Capturer:      a.capturer,
		Fingerprinter: a.fingerprinter,
		History:       history,
		Cache:         cache,
		Telemetry:     a.telemetry,
		Metrics:       a.metrics,
		Logger:        a.logger,
		Clock:         a.clock,
	})

	report, runErr := a.scheduler.Run(ctx, graph, pipeline, scheduler.Options{
		Parallelism: project.Settings.Parallelism,
		Execution:   execution.Options{Rerun: opts.Rerun, NoCache: opts.NoCache},
	})
	if report != nil {
		a.logger.Info(summarize(report))
	}

	if cerr := a.telemetry.Close(); cerr != nil {
		a.logger.Warn("failed to close progress recording: " + cerr.Error())
	}

	// 5. Export metrics
	if opts.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(opts.MetricsFile); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, runErr)
	}
	return nil
}

func summarize(report *scheduler.Report) string {
	counts := make(map[domain.Outcome]int, len(domain.Outcomes))
	for _, res := range report.Results {
		counts[res.Outcome]++
	}

	parts := make([]string, 0, len(domain.Outcomes)+1)
	for _, outcome := range domain.Outcomes {
		parts = append(parts, fmt.Sprintf("%d %s", counts[outcome], outcome))
	}
	parts = append(parts, fmt.Sprintf("%d skipped", len(report.Skipped)))
	return "summary: " + strings.Join(parts, ", ")
}

// Status writes the recorded history of every task in the project to w,
// together with the declared outputs currently missing on disk.
func (a *App) Status(ctx context.Context, w io.Writer) error {
	project, err := a.loadProject()
	if err != nil {
		return err
	}

	history, err := a.storage.OpenHistory(project.Root, project.Settings.History)
	if err != nil {
		return err
	}
	defer history.Close() //nolint:errcheck // Read only access

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TASK\tOUTCOME\tLAST RUN\tEXECUTION\tMISSING OUTPUTS")

	for task := range project.Graph.Walk() {
		name := task.Name.String()
		missing, err := a.missingOutputs(&task)
		if err != nil {
			return zerr.With(err, "task", name)
		}

		outcome, lastRun, executionID := "-", "-", "-"
		switch state, err := history.Load(ctx, name); {
		case !task.HistoryMaintained:
			outcome = "untracked"
		case err != nil:
			a.logger.Warn(fmt.Sprintf("%s: unreadable execution history: %v", name, err))
			outcome = "unreadable"
		case state == nil:
			outcome = "never run"
		default:
			outcome = string(state.Outcome)
			lastRun = state.Timestamp.Format(time.RFC3339)
			executionID = state.ExecutionID
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, outcome, lastRun, executionID, list(missing))
	}
	return tw.Flush()
}

func (a *App) missingOutputs(task *domain.Task) ([]string, error) {
	dir := task.WorkingDir.String()
	var missing []string
	for _, prop := range task.Outputs {
		paths, err := a.resolver.Resolve(domain.Strings(prop.Paths), dir)
		if err != nil {
			return nil, err
		}
		m, err := a.verifier.MissingOutputs(dir, paths)
		if err != nil {
			return nil, err
		}
		for _, path := range m {
			if rel, err := filepath.Rel(dir, path); err == nil {
				path = rel
			}
			missing = append(missing, path)
		}
	}
	return missing, nil
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	History bool
	Cache   bool
}

// Clean removes the execution history and the build cache of the project.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	project, err := a.loadProject()
	if err != nil {
		return err
	}

	var errs error

	// Helper to remove a path and log the action
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(filepath.Join(project.Root, path)); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.History {
		remove(domain.DefaultHistoryPath(), "execution history")
		remove(domain.DefaultHistoryDBPath(), "execution history database")
	}

	if options.Cache {
		remove(domain.DefaultCachePath(), "build cache")
	}

	return errs
}
