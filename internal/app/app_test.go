package app_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/adapters/codeid"
	"go.trai.ch/avert/internal/adapters/config"
	"go.trai.ch/avert/internal/adapters/fs"
	"go.trai.ch/avert/internal/adapters/logger"
	"go.trai.ch/avert/internal/adapters/metrics"
	"go.trai.ch/avert/internal/adapters/snapshot"
	"go.trai.ch/avert/internal/adapters/storage"
	"go.trai.ch/avert/internal/adapters/telemetry"
	"go.trai.ch/avert/internal/app"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports/mocks"
	"go.trai.ch/avert/internal/engine/capture"
	"go.trai.ch/avert/internal/engine/fingerprint"
	"go.trai.ch/avert/internal/engine/scheduler"
	"go.trai.ch/avert/internal/engine/work"
	"go.uber.org/mock/gomock"
)

const project = `
version: "1"
settings:
  parallelism: 2
tasks:
  generate:
    cmd: ["generate"]
    outputs:
      code: ["gen"]
  compile:
    cmd: ["compile"]
    inputs:
      sources:
        paths: ["src"]
        normalization: relative-path
    outputs:
      binary: ["bin/app"]
    dependsOn: ["generate"]
    cacheable: true
`

const sharedOutputs = `
version: "1"
tasks:
  docs:
    cmd: ["docs"]
    outputs:
      site: ["shared"]
    overlappingOutputs: true
    cacheable: true
  report:
    cmd: ["report"]
    outputs:
      site: ["shared"]
    overlappingOutputs: true
    cacheable: true
`

// fakeBuild stands in for the project's commands and counts their executions.
type fakeBuild struct {
	root string
	fail map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func (b *fakeBuild) execute(_ context.Context, task *domain.Task, _, _ io.Writer) error {
	name := task.Name.String()

	b.mu.Lock()
	b.calls[name]++
	b.mu.Unlock()

	if b.fail[name] {
		return domain.ErrCommandFailed
	}

	switch name {
	case "generate":
		return writeFile(filepath.Join(b.root, "gen", "code.go"), "package gen")
	case "compile":
		src, err := os.ReadFile(filepath.Join(b.root, "src", "main.go"))
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(b.root, "bin", "app"), "binary of "+string(src))
	case "docs", "report":
		return writeFile(filepath.Join(b.root, "shared", name+".txt"), name)
	}
	return nil
}

func (b *fakeBuild) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), domain.FilePerm)
}

type fixture struct {
	root  string
	app   *app.App
	build *fakeBuild
	logs  *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newProjectFixture(t, project)
}

func newProjectFixture(t *testing.T, projectFile string) *fixture {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, writeFile(filepath.Join(root, domain.YAMLFileName), projectFile))
	require.NoError(t, writeFile(filepath.Join(root, "src", "main.go"), "package main"))

	build := &fakeBuild{root: root, fail: map[string]bool{}, calls: map[string]int{}}
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(build.execute).AnyTimes()

	logs := new(bytes.Buffer)
	log := logger.New()
	log.SetOutput(logs)

	snapshotter := fs.NewSnapshotter(fs.NewWalker())
	resolver := fs.NewResolver()
	fingerprinter := fingerprint.NewRegistry()

	a := app.New(app.Dependencies{
		ConfigLoader:  config.NewLoader(log),
		Storage:       storage.NewProvider(),
		Capturer:      capture.NewBuilder(snapshot.New(), codeid.NewHasher(), fingerprinter),
		Fingerprinter: fingerprinter,
		Telemetry:     telemetry.NewNoOp(),
		Metrics:       metrics.NewRecorder(prometheus.NewRegistry()),
		Logger:        log,
		Scheduler:     scheduler.NewScheduler(work.NewFactory(snapshotter, resolver, executor)),
		Resolver:      resolver,
		Verifier:      fs.NewVerifier(),
	}).WithWorkDir(root)

	return &fixture{root: root, app: a, build: build, logs: logs}
}

func (f *fixture) run(t *testing.T, opts app.RunOptions, targets ...string) error {
	t.Helper()
	return f.app.Run(context.Background(), targets, opts)
}

func TestApp_Run_UpToDate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	assert.Equal(t, 1, f.build.count("generate"))
	assert.Equal(t, 1, f.build.count("compile"))
	assert.FileExists(t, filepath.Join(f.root, "bin", "app"))
	assert.DirExists(t, filepath.Join(f.root, domain.DefaultHistoryPath()))

	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	assert.Equal(t, 1, f.build.count("generate"))
	assert.Equal(t, 1, f.build.count("compile"))
	assert.Contains(t, f.logs.String(), "compile: up-to-date")
	assert.Contains(t, f.logs.String(), "summary: 2 up-to-date, 0 from-cache, 0 executed, 0 failed, 0 skipped")
}

func TestApp_Run_InputChangeExecutesAgain(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, app.RunOptions{}, "all"))

	require.NoError(t, writeFile(filepath.Join(f.root, "src", "main.go"), "package main // changed"))
	require.NoError(t, f.run(t, app.RunOptions{}, "all"))

	assert.Equal(t, 1, f.build.count("generate"))
	assert.Equal(t, 2, f.build.count("compile"))
	content, err := os.ReadFile(filepath.Join(f.root, "bin", "app"))
	require.NoError(t, err)
	assert.Equal(t, "binary of package main // changed", string(content))
}

func TestApp_Run_Rerun(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	require.NoError(t, f.run(t, app.RunOptions{Rerun: true}, "compile"))

	assert.Equal(t, 2, f.build.count("generate"))
	assert.Equal(t, 2, f.build.count("compile"))
}

func TestApp_Run_RestoresFromBuildCache(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{History: true}))
	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "bin")))

	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	assert.Equal(t, 1, f.build.count("compile"), "compile must be restored, not executed")
	content, err := os.ReadFile(filepath.Join(f.root, "bin", "app"))
	require.NoError(t, err)
	assert.Equal(t, "binary of package main", string(content))
	assert.Contains(t, f.logs.String(), "compile: from-cache")
}

func TestApp_Run_OverlappingOutputsBypassBuildCache(t *testing.T) {
	f := newProjectFixture(t, sharedOutputs)
	require.NoError(t, f.run(t, app.RunOptions{}, "all"))

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{History: true}))
	require.NoError(t, f.run(t, app.RunOptions{}, "all"))

	assert.Equal(t, 2, f.build.count("docs"))
	assert.Equal(t, 2, f.build.count("report"))
	assert.FileExists(t, filepath.Join(f.root, "shared", "docs.txt"))
	assert.FileExists(t, filepath.Join(f.root, "shared", "report.txt"))
	assert.NotContains(t, f.logs.String(), "docs: from-cache")
	assert.NotContains(t, f.logs.String(), "report: from-cache")
}

func TestApp_Run_NoCache(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, app.RunOptions{NoCache: true}, "compile"))
	assert.NoDirExists(t, filepath.Join(f.root, domain.DefaultCachePath()))
}

func TestApp_Run_FailureSkipsDependents(t *testing.T) {
	f := newFixture(t)
	f.build.fail["generate"] = true

	err := f.run(t, app.RunOptions{}, "compile")
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, domain.ErrCommandFailed.Error())
	assert.Equal(t, 0, f.build.count("compile"))

	// Failed units record no history, so the next run executes them again.
	f.build.fail["generate"] = false
	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	assert.Equal(t, 2, f.build.count("generate"))
	assert.Equal(t, 1, f.build.count("compile"))
}

func TestApp_Run_Errors(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)

	err = f.run(t, app.RunOptions{}, "unknown")
	require.ErrorContains(t, err, domain.ErrTaskNotFound.Error())

	missing := app.New(app.Dependencies{ConfigLoader: config.NewLoader(logger.New())}).WithWorkDir(t.TempDir())
	err = missing.Run(context.Background(), []string{"all"}, app.RunOptions{})
	require.ErrorContains(t, err, "failed to load configuration")
}

func TestApp_Run_WritesMetrics(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "avert.prom")

	require.NoError(t, f.run(t, app.RunOptions{MetricsFile: path}, "compile"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `avert_unit_outcomes_total{outcome="executed"} 2`)
}

func TestApp_Status(t *testing.T) {
	f := newFixture(t)

	var before bytes.Buffer
	require.NoError(t, f.app.Status(context.Background(), &before))
	assert.Contains(t, before.String(), "never run")
	assert.Contains(t, before.String(), filepath.Join("bin", "app"))

	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))

	var after bytes.Buffer
	require.NoError(t, f.app.Status(context.Background(), &after))
	assert.Contains(t, after.String(), "TASK")
	assert.Contains(t, after.String(), string(domain.OutcomeExecuted))
	assert.NotContains(t, after.String(), "never run")
	assert.NotContains(t, after.String(), filepath.Join("bin", "app"))
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	require.DirExists(t, filepath.Join(f.root, domain.DefaultCachePath()))

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{History: true}))
	assert.NoDirExists(t, filepath.Join(f.root, domain.DefaultHistoryPath()))
	assert.DirExists(t, filepath.Join(f.root, domain.DefaultCachePath()))

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{History: true, Cache: true}))
	assert.NoDirExists(t, filepath.Join(f.root, domain.DefaultCachePath()))

	require.NoError(t, f.run(t, app.RunOptions{}, "compile"))
	assert.Equal(t, 2, f.build.count("compile"))
}
