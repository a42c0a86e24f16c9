// Package filex holds file helpers for the CLI.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents when missing and returns its
// absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// AtomicFile writes to a temporary file next to its target. Commit renames
// it into place; Abort (or Commit after a failed write) removes it, so the
// target is either fully written or untouched.
type AtomicFile struct {
	*os.File
	target string
	done   bool
}

func CreateAtomic(target string) (*AtomicFile, error) {
	dir, err := EnsureDir(filepath.Dir(target))
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.part")
	if err != nil {
		return nil, fmt.Errorf("create temp for %s: %w", target, err)
	}
	return &AtomicFile{File: f, target: target}, nil
}

func (a *AtomicFile) Commit() error {
	if a.done {
		return errors.New("filex: file already finished")
	}
	a.done = true

	if err := a.File.Sync(); err != nil {
		return a.cleanup(err)
	}
	if err := a.File.Close(); err != nil {
		_ = os.Remove(a.File.Name())
		return fmt.Errorf("close %s: %w", a.File.Name(), err)
	}
	if err := os.Rename(a.File.Name(), a.target); err != nil {
		_ = os.Remove(a.File.Name())
		return fmt.Errorf("rename to %s: %w", a.target, err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	_ = a.cleanup(nil)
}

func (a *AtomicFile) cleanup(err error) error {
	_ = a.File.Close()
	_ = os.Remove(a.File.Name())
	return err
}
