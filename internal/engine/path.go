package engine

import (
	"fmt"

	"github.com/kolah/oasforge/internal/model"
)

// CreatePath inserts a new path with no operations.
func (e *Engine) CreatePath(doc *model.Document, path string) (*model.Document, error) {
	path = trimName(path)
	if path == "" {
		return doc, fmt.Errorf("path: %w", ErrInvalidName)
	}
	if _, ok := doc.Paths.Get(path); ok {
		return doc, fmt.Errorf("path %q: %w", path, ErrDuplicateName)
	}
	next := doc.Clone()
	next.Paths.Set(path, model.NewPathItem())
	return next, nil
}

// RenamePath moves a path's whole operation map to a new key. Renaming to a
// blank string or to the same name is a successful no-op.
func (e *Engine) RenamePath(doc *model.Document, oldPath, newPath string) (*model.Document, error) {
	newPath = trimName(newPath)
	if newPath == "" || newPath == oldPath {
		return doc, nil
	}
	if _, ok := doc.Paths.Get(oldPath); !ok {
		return doc, fmt.Errorf("path %q: %w", oldPath, ErrNotFound)
	}
	if _, ok := doc.Paths.Get(newPath); ok {
		return doc, fmt.Errorf("path %q: %w", newPath, ErrDuplicateName)
	}
	next := doc.Clone()
	item, _ := next.Paths.Get(oldPath)
	next.Paths.Delete(oldPath)
	next.Paths.Set(newPath, item)
	return next, nil
}

// DeletePath removes a path and all its operations. No-op when absent.
func (e *Engine) DeletePath(doc *model.Document, path string) (*model.Document, error) {
	if _, ok := doc.Paths.Get(path); !ok {
		return doc, nil
	}
	next := doc.Clone()
	next.Paths.Delete(path)
	return next, nil
}
