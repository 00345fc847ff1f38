// Package config provides the project file loader for avert.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// reservedProperties are the input property names recorded for every task.
var reservedProperties = []string{"command", "environment"}

// Loader implements ports.ConfigLoader for YAML and TOML project files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the nearest project file at or above cwd and returns its project.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(configPath)
}

// LoadFile reads the project file at path. The format follows the extension.
func (l *Loader) LoadFile(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Projectfile
	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	return l.build(path, &file)
}

// findConfiguration walks up from cwd to the first directory holding a project file.
// avert.yaml wins over avert.toml in the same directory.
func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		for _, name := range []string{domain.YAMLFileName, domain.TOMLFileName} {
			candidate := filepath.Join(currentDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func (l *Loader) build(configPath string, file *Projectfile) (*domain.Project, error) {
	root := resolveRoot(configPath, file.Root)

	settings, err := buildSettings(file.Settings)
	if err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	for _, name := range slices.Sorted(maps.Keys(file.Tasks)) {
		dto := file.Tasks[name]
		if name == domain.AllTasksTarget {
			return nil, zerr.With(domain.ErrReservedTaskName, "task_name", name)
		}
		for _, dep := range dto.DependsOn {
			if _, ok := file.Tasks[dep]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrMissingDependency, "task_name", name), "missing_dependency", dep)
			}
		}

		task, err := l.buildTask(root, name, &dto)
		if err != nil {
			return nil, zerr.With(err, "task_name", name)
		}
		if err := g.AddTask(task); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &domain.Project{Root: root, Settings: settings, Graph: g}, nil
}

func buildSettings(dto SettingsDTO) (domain.Settings, error) {
	settings := domain.Settings{
		Parallelism: dto.Parallelism,
		History:     domain.HistoryBackend(dto.History),
		Cache:       true,
	}
	if settings.Parallelism <= 0 {
		settings.Parallelism = runtime.NumCPU()
	}
	switch settings.History {
	case "":
		settings.History = domain.HistoryJSON
	case domain.HistoryJSON, domain.HistorySQLite:
	default:
		return domain.Settings{}, zerr.With(domain.ErrInvalidHistoryBackend, "history", dto.History)
	}
	if dto.Cache != nil {
		settings.Cache = *dto.Cache
	}
	return settings, nil
}

func (l *Loader) buildTask(root, name string, dto *TaskDTO) (*domain.Task, error) {
	for _, reserved := range reservedProperties {
		if _, ok := dto.Properties[reserved]; ok {
			return nil, zerr.With(domain.ErrReservedPropertyName, "property", reserved)
		}
	}

	inputs := make([]domain.FileProperty, 0, len(dto.Inputs))
	for _, propName := range slices.Sorted(maps.Keys(dto.Inputs)) {
		in := dto.Inputs[propName]
		normalization, ok := domain.ParseNormalization(in.Normalization)
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrInvalidNormalization, "property", propName),
				"normalization", in.Normalization)
		}
		inputs = append(inputs, domain.FileProperty{
			Name:          propName,
			Paths:         canonicalizeStrings(in.Paths),
			Normalization: normalization,
		})
	}

	outputs := make([]domain.FileProperty, 0, len(dto.Outputs))
	for _, propName := range slices.Sorted(maps.Keys(dto.Outputs)) {
		if _, clash := dto.Inputs[propName]; clash {
			return nil, zerr.With(domain.ErrReservedPropertyName, "property", propName)
		}
		outputs = append(outputs, domain.FileProperty{
			Name:          propName,
			Paths:         canonicalizeStrings(dto.Outputs[propName]),
			Normalization: domain.OutputNormalization,
		})
	}

	if len(dto.Cmd) == 0 {
		l.Logger.Warn(fmt.Sprintf("task %s declares no command", name))
	}

	historyMaintained := true
	if dto.History != nil {
		historyMaintained = *dto.History
	}

	return &domain.Task{
		Name:               domain.NewInternedString(name),
		Command:            dto.Cmd,
		Environment:        dto.Environment,
		Properties:         dto.Properties,
		Inputs:             inputs,
		Outputs:            outputs,
		Dependencies:       internStrings(dto.DependsOn),
		WorkingDir:         domain.NewInternedString(resolvePath(root, dto.WorkingDir)),
		Implementation:     internStrings(dto.Implementation),
		Actions:            internStrings(dto.Actions),
		OverlappingOutputs: dto.OverlappingOutputs,
		HistoryMaintained:  historyMaintained,
		Cacheable:          dto.Cacheable,
	}, nil
}

// resolveRoot returns the project root: the directory of the project file,
// adjusted by an optional root entry relative to it.
func resolveRoot(configPath, root string) string {
	return resolvePath(filepath.Dir(configPath), root)
}

func resolvePath(base, path string) string {
	switch {
	case path == "":
		return filepath.Clean(base)
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		return filepath.Join(base, path)
	}
}

func internStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

// canonicalizeStrings sorts, deduplicates and interns path patterns.
func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return internStrings(slices.Compact(sorted))
}
