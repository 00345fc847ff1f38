package config

// Projectfile represents the structure of avert.yaml and avert.toml.
type Projectfile struct {
	Version  string             `yaml:"version" toml:"version"`
	Root     string             `yaml:"root" toml:"root"`
	Settings SettingsDTO        `yaml:"settings" toml:"settings"`
	Tasks    map[string]TaskDTO `yaml:"tasks" toml:"tasks"`
}

// SettingsDTO represents the project-wide engine settings.
type SettingsDTO struct {
	Parallelism int    `yaml:"parallelism" toml:"parallelism"`
	History     string `yaml:"history" toml:"history"`
	Cache       *bool  `yaml:"cache" toml:"cache"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Cmd                []string                    `yaml:"cmd" toml:"cmd"`
	Environment        map[string]string           `yaml:"environment" toml:"environment"`
	Properties         map[string]any              `yaml:"properties" toml:"properties"`
	Implementation     []string                    `yaml:"implementation" toml:"implementation"`
	Actions            []string                    `yaml:"actions" toml:"actions"`
	Inputs             map[string]InputPropertyDTO `yaml:"inputs" toml:"inputs"`
	Outputs            map[string][]string         `yaml:"outputs" toml:"outputs"`
	DependsOn          []string                    `yaml:"dependsOn" toml:"dependsOn"`
	WorkingDir         string                      `yaml:"workingDir" toml:"workingDir"`
	OverlappingOutputs bool                        `yaml:"overlappingOutputs" toml:"overlappingOutputs"`
	History            *bool                       `yaml:"history" toml:"history"`
	Cacheable          bool                        `yaml:"cacheable" toml:"cacheable"`
}

// InputPropertyDTO represents a named set of input files.
type InputPropertyDTO struct {
	Paths         []string `yaml:"paths" toml:"paths"`
	Normalization string   `yaml:"normalization" toml:"normalization"`
}
