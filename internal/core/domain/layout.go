package domain

import "path/filepath"

const (
	// AvertDirName is the name of the internal workspace directory.
	AvertDirName = ".avert"

	// HistoryDirName is the name of the execution history directory.
	HistoryDirName = "history"

	// HistoryDBName is the name of the sqlite execution history database.
	HistoryDBName = "history.db"

	// CacheDirName is the name of the local build cache directory.
	CacheDirName = "cache"

	// YAMLFileName is the name of the YAML project configuration file.
	YAMLFileName = "avert.yaml"

	// TOMLFileName is the name of the TOML project configuration file.
	TOMLFileName = "avert.toml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultAvertPath returns the default root directory for avert metadata.
func DefaultAvertPath() string {
	return AvertDirName
}

// DefaultHistoryPath returns the default path for the JSON execution history.
// It joins .avert and history.
func DefaultHistoryPath() string {
	return filepath.Join(AvertDirName, HistoryDirName)
}

// DefaultHistoryDBPath returns the default path for the sqlite execution history.
func DefaultHistoryDBPath() string {
	return filepath.Join(AvertDirName, HistoryDBName)
}

// DefaultCachePath returns the default path for the local build cache.
func DefaultCachePath() string {
	return filepath.Join(AvertDirName, CacheDirName)
}
