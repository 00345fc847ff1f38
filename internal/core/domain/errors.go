package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoTargetsSpecified is returned when no targets are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrReservedTaskName is returned when a task uses a reserved name (e.g., "all").
	ErrReservedTaskName = zerr.New("task name 'all' is reserved")

	// ErrReservedPropertyName is returned when a task declares a property that collides with a built-in one.
	ErrReservedPropertyName = zerr.New("property name is reserved")

	// ErrInvalidNormalization is returned when a file property declares an unknown normalization.
	ErrInvalidNormalization = zerr.New("invalid normalization, expected one of absolute-path, relative-path, name-only, ignore-missing")

	// ErrInvalidHistoryBackend is returned when the settings name an unknown history backend.
	ErrInvalidHistoryBackend = zerr.New("invalid history backend, expected 'json' or 'sqlite'")

	// ErrSnapshotFailed is returned when an input value cannot be captured deterministically.
	ErrSnapshotFailed = zerr.New("failed to snapshot value")

	// ErrFingerprintFailed is returned when a file collection cannot be snapshotted or fingerprinted.
	ErrFingerprintFailed = zerr.New("failed to fingerprint files")

	// ErrHashingFailed is returned when an implementation identity cannot be hashed.
	ErrHashingFailed = zerr.New("failed to hash implementation")

	// ErrInputNotFound is returned when a declared input file or directory is not found.
	ErrInputNotFound = zerr.New("input not found")

	// ErrCaptureFailed is returned when the before-execution state of a unit cannot be captured.
	ErrCaptureFailed = zerr.New("failed to capture state before execution")

	// ErrStoreCreateFailed is returned when the history store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create history store directory")

	// ErrStoreOpenFailed is returned when the history database cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open history store")

	// ErrStoreReadFailed is returned when execution history cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read execution history")

	// ErrStoreUnmarshalFailed is returned when execution history cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal execution history")

	// ErrStoreMarshalFailed is returned when execution history cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal execution history")

	// ErrStoreWriteFailed is returned when execution history cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write execution history")

	// ErrStoreRemoveFailed is returned when execution history cannot be removed.
	ErrStoreRemoveFailed = zerr.New("failed to remove execution history")

	// ErrCacheStoreFailed is returned when outputs cannot be written to the build cache.
	ErrCacheStoreFailed = zerr.New("failed to store outputs in build cache")

	// ErrCacheLoadFailed is returned when outputs cannot be restored from the build cache.
	ErrCacheLoadFailed = zerr.New("failed to load outputs from build cache")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no project file can be found.
	ErrConfigNotFound = zerr.New("could not find avert.yaml or avert.toml")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrCommandFailed is returned when the command of a task exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrCleanFailed is returned when removing avert state from disk fails.
	ErrCleanFailed = zerr.New("failed to clean workspace state")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)
