package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/avert/internal/adapters/config"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const yamlProject = `
version: "1"
settings:
  parallelism: 3
  history: sqlite
  cache: false
tasks:
  build:
    cmd: ["go", "build", "-o", "bin/app", "./cmd/app"]
    environment:
      CGO_ENABLED: "0"
    properties:
      target: linux
      level: 2
    implementation: ["scripts/build.sh"]
    actions: ["scripts/strip.sh"]
    inputs:
      sources:
        paths: ["src", "go.mod", "src"]
        normalization: relative-path
      assets:
        paths: ["assets"]
    outputs:
      binary: ["bin/app"]
    dependsOn: ["generate"]
    overlappingOutputs: true
    cacheable: true
  generate:
    cmd: ["go", "generate", "./..."]
    history: false
`

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, domain.YAMLFileName, yamlProject)

	project, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, project.Root)
	assert.Equal(t, domain.Settings{Parallelism: 3, History: domain.HistorySQLite, Cache: false}, project.Settings)

	order := make([]string, 0, 2)
	for task := range project.Graph.Walk() {
		order = append(order, task.Name.String())
	}
	assert.Equal(t, []string{"generate", "build"}, order)

	build, ok := project.Graph.Task("build")
	require.True(t, ok)
	assert.Equal(t, []string{"go", "build", "-o", "bin/app", "./cmd/app"}, build.Command)
	assert.Equal(t, map[string]string{"CGO_ENABLED": "0"}, build.Environment)
	assert.Equal(t, "linux", build.Properties["target"])
	assert.Equal(t, dir, build.WorkingDir.String())
	assert.True(t, build.OverlappingOutputs)
	assert.True(t, build.Cacheable)
	assert.True(t, build.HistoryMaintained)

	require.Len(t, build.Inputs, 2)
	assert.Equal(t, "assets", build.Inputs[0].Name)
	assert.Equal(t, domain.NormalizeAbsolutePath, build.Inputs[0].Normalization)
	assert.Equal(t, "sources", build.Inputs[1].Name)
	assert.Equal(t, domain.NormalizeRelativePath, build.Inputs[1].Normalization)
	assert.Equal(t, []domain.InternedString{
		domain.NewInternedString("go.mod"), domain.NewInternedString("src"),
	}, build.Inputs[1].Paths)

	require.Len(t, build.Outputs, 1)
	assert.Equal(t, domain.FileProperty{
		Name:          "binary",
		Paths:         []domain.InternedString{domain.NewInternedString("bin/app")},
		Normalization: domain.OutputNormalization,
	}, build.Outputs[0])

	generate, ok := project.Graph.Task("generate")
	require.True(t, ok)
	assert.False(t, generate.HistoryMaintained)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, domain.TOMLFileName, `
version = "1"

[settings]
parallelism = 2

[tasks.test]
cmd = ["go", "test", "./..."]
workingDir = "service"

[tasks.test.properties]
race = true

[tasks.test.inputs.sources]
paths = ["**/*.go"]
normalization = "name-only"

[tasks.test.outputs]
report = ["report.xml"]
`)

	project, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, project.Settings.Parallelism)
	assert.Equal(t, domain.HistoryJSON, project.Settings.History)
	assert.True(t, project.Settings.Cache)

	task, ok := project.Graph.Task("test")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "service"), task.WorkingDir.String())
	assert.Equal(t, true, task.Properties["race"])
	require.Len(t, task.Inputs, 1)
	assert.Equal(t, domain.NormalizeNameOnly, task.Inputs[0].Normalization)
}

func TestLoad_Discovery(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, domain.YAMLFileName, "version: \"1\"\ntasks:\n  lint:\n    cmd: [\"true\"]\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	project, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, dir, project.Root)
	assert.Equal(t, runtime.NumCPU(), project.Settings.Parallelism)
}

func TestLoad_YAMLWinsOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, domain.YAMLFileName, "tasks:\n  fromyaml:\n    cmd: [\"true\"]\n")
	writeConfig(t, dir, domain.TOMLFileName, "[tasks.fromtoml]\ncmd = [\"true\"]\n")

	project, err := newLoader(t).Load(dir)
	require.NoError(t, err)
	_, ok := project.Graph.Task("fromyaml")
	assert.True(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "reserved task name",
			content: "tasks:\n  all:\n    cmd: [\"true\"]\n",
			want:    domain.ErrReservedTaskName,
		},
		{
			name:    "missing dependency",
			content: "tasks:\n  build:\n    dependsOn: [\"missing\"]\n",
			want:    domain.ErrMissingDependency,
		},
		{
			name:    "cycle",
			content: "tasks:\n  a:\n    dependsOn: [\"b\"]\n  b:\n    dependsOn: [\"a\"]\n",
			want:    domain.ErrCycleDetected,
		},
		{
			name:    "invalid normalization",
			content: "tasks:\n  a:\n    inputs:\n      src:\n        paths: [\"src\"]\n        normalization: content-only\n",
			want:    domain.ErrInvalidNormalization,
		},
		{
			name:    "reserved property",
			content: "tasks:\n  a:\n    properties:\n      command: x\n",
			want:    domain.ErrReservedPropertyName,
		},
		{
			name:    "invalid history backend",
			content: "settings:\n  history: redis\n",
			want:    domain.ErrInvalidHistoryBackend,
		},
		{
			name:    "parse error",
			content: "tasks: [",
			want:    domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, domain.YAMLFileName, tt.content)

			_, err := newLoader(t).Load(dir)
			require.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}
