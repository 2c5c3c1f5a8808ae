package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Transaction stages page writes and applies them together. If any write
// fails, files already written are removed and files that were overwritten
// get their previous content back.
type Transaction struct {
	operations []fileOperation
	index      map[string]int
	committed  bool
}

// fileOperation represents a single file write operation
type fileOperation struct {
	path    string
	content []byte
	mode    os.FileMode
}

// applied remembers what a write replaced, for rollback.
type applied struct {
	path     string
	previous []byte
	existed  bool
	mode     os.FileMode
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{index: make(map[string]int)}
}

// AddFile stages a file write (doesn't write yet). Staging the same path
// again replaces the earlier content.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	if i, ok := t.index[path]; ok {
		t.operations[i].content = content
		t.operations[i].mode = mode
		return
	}
	t.index[path] = len(t.operations)
	t.operations = append(t.operations, fileOperation{path: path, content: content, mode: mode})
}

// Len returns the number of staged files.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Paths returns the staged paths in staging order.
func (t *Transaction) Paths() []string {
	paths := make([]string, len(t.operations))
	for i, op := range t.operations {
		paths[i] = op.path
	}
	return paths
}

// Commit writes all staged files to disk.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	done := make([]applied, 0, len(t.operations))
	for _, op := range t.operations {
		prev := applied{path: op.path, mode: op.mode}
		if info, err := os.Stat(op.path); err == nil {
			if info.IsDir() {
				t.rollback(done)
				return fmt.Errorf("failed to write file %s: is a directory", op.path)
			}
			data, err := os.ReadFile(op.path)
			if err != nil {
				t.rollback(done)
				return fmt.Errorf("failed to back up %s: %w", op.path, err)
			}
			prev.previous, prev.existed, prev.mode = data, true, info.Mode().Perm()
		} else if !errors.Is(err, os.ErrNotExist) {
			t.rollback(done)
			return fmt.Errorf("failed to stat %s: %w", op.path, err)
		}

		dir := filepath.Dir(op.path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.rollback(done)
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		if err := os.WriteFile(op.path, op.content, op.mode); err != nil {
			t.rollback(done)
			return fmt.Errorf("failed to write file %s: %w", op.path, err)
		}
		done = append(done, prev)
	}

	t.committed = true
	return nil
}

// rollback undoes writes in reverse order. Best effort, errors are ignored.
func (t *Transaction) rollback(done []applied) {
	for i := len(done) - 1; i >= 0; i-- {
		a := done[i]
		if a.existed {
			os.WriteFile(a.path, a.previous, a.mode)
			continue
		}
		os.Remove(a.path)
	}
}
