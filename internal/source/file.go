package source

import "strings"

// File is an in-memory Jack source file. The entire contents are buffered
// upfront since Jack source files are small. Lines is a cached
// split of Contents by '\n' so diagnostics don't repeatedly re-split it.
type File struct {
	Path     string
	Contents string
	Lines    []string
}

// New wraps raw file contents into a File, pre-splitting its lines.
func New(path, contents string) *File {
	return &File{
		Path:     path,
		Contents: contents,
		Lines:    strings.Split(contents, "\n"),
	}
}

// Line returns the 1-indexed source line, or "" if out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// ClassName derives the Jack class name a file must define from its path,
// i.e. the base name with the ".jack" extension stripped.
func (f *File) ClassName() string {
	base := f.Path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".jack")
}
