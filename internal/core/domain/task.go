package domain

// FileProperty is a named set of file roots declared by a task.
type FileProperty struct {
	Name          string
	Paths         []InternedString
	Normalization Normalization
}

// Task represents a unit of work in the build system.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name         InternedString
	Command      []string
	Environment  map[string]string
	Properties   map[string]any
	Inputs       []FileProperty
	Outputs      []FileProperty
	Dependencies []InternedString
	WorkingDir   InternedString

	// Implementation lists files whose contents define the task's behavior.
	Implementation []InternedString
	// Actions lists additional scripts run as part of the task, hashed one by one.
	Actions []InternedString

	OverlappingOutputs bool
	HistoryMaintained  bool
	Cacheable          bool
}

// HistoryBackend selects the execution history store.
type HistoryBackend string

const (
	// HistoryJSON stores one JSON document per unit under .avert/history.
	HistoryJSON HistoryBackend = "json"
	// HistorySQLite stores history in .avert/history.db.
	HistorySQLite HistoryBackend = "sqlite"
)

// Settings holds project-wide engine settings.
type Settings struct {
	Parallelism int
	History     HistoryBackend
	Cache       bool
}

// Project is a loaded project file: its root directory, settings and task graph.
type Project struct {
	Root     string
	Settings Settings
	Graph    *Graph
}
