package domain

import "iter"

// FileType is the kind of a file system entry.
type FileType uint8

const (
	// FileTypeMissing marks a location that does not exist.
	FileTypeMissing FileType = iota
	// FileTypeRegular marks a regular file.
	FileTypeRegular
	// FileTypeDirectory marks a directory.
	FileTypeDirectory
)

// String returns the file type name.
func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "file"
	case FileTypeDirectory:
		return "dir"
	default:
		return "missing"
	}
}

// FileSnapshot is a single file system entry with its content digest.
// Directories carry a zero ContentHash.
type FileSnapshot struct {
	AbsolutePath string
	// RelativePath is relative to the snapshot root. It is empty for a root
	// directory and the base name for a root regular file.
	RelativePath string
	Type         FileType
	ContentHash  Hash
}

// LocationSnapshot is the snapshot of one declared root.
type LocationSnapshot struct {
	Root  string
	Type  FileType
	Files []FileSnapshot
}

// FileSystemSnapshot is an immutable point-in-time capture of a set of roots.
type FileSystemSnapshot struct {
	Roots []LocationSnapshot
}

// IsEmpty reports whether the snapshot holds no file entries.
func (s FileSystemSnapshot) IsEmpty() bool {
	for _, root := range s.Roots {
		if len(root.Files) > 0 {
			return false
		}
	}
	return true
}

// Files yields every entry of every root.
func (s FileSystemSnapshot) Files() iter.Seq[FileSnapshot] {
	return func(yield func(FileSnapshot) bool) {
		for _, root := range s.Roots {
			for _, f := range root.Files {
				if !yield(f) {
					return
				}
			}
		}
	}
}

// Filter returns a new snapshot holding only the entries accepted by keep.
// Roots are retained even when all of their entries are dropped.
func (s FileSystemSnapshot) Filter(keep func(FileSnapshot) bool) FileSystemSnapshot {
	out := FileSystemSnapshot{Roots: make([]LocationSnapshot, 0, len(s.Roots))}
	for _, root := range s.Roots {
		kept := LocationSnapshot{Root: root.Root, Type: root.Type}
		for _, f := range root.Files {
			if keep(f) {
				kept.Files = append(kept.Files, f)
			}
		}
		out.Roots = append(out.Roots, kept)
	}
	return out
}
