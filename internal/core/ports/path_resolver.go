package ports

// PathResolver expands declared path patterns into concrete paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=path_resolver.go -destination=mocks/mock_path_resolver.go -package=mocks
type PathResolver interface {
	// Resolve expands patterns relative to root into sorted absolute paths.
	Resolve(patterns []string, root string) ([]string, error)
}
