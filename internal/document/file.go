package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File is a Document backed by a file on disk. Edits stay in memory until
// Save.
type File struct {
	*Buffer
	path string
	orig string
}

// Open reads path into memory.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Buffer: NewBuffer(string(data)), path: path, orig: string(data)}, nil
}

func (f *File) Path() string { return f.path }

// Dirty reports whether the content differs from what was read.
func (f *File) Dirty() bool {
	return f.Text() != f.orig
}

// Save writes the content back through a temporary file in the same
// directory. A clean file is not touched.
func (f *File) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := f.Text()
	if text == f.orig {
		return nil
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".lektor-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, f.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	f.orig = text
	return nil
}
