package engine

import (
	"fmt"

	"github.com/kolah/oasforge/internal/model"
)

// InfoPatch carries a partial update of the document info block.
type InfoPatch struct {
	Title       *string
	Version     *string
	Description *string
}

// UpdateInfo merges the patch into the info block.
func (e *Engine) UpdateInfo(doc *model.Document, patch InfoPatch) (*model.Document, error) {
	next := doc.Clone()
	if patch.Title != nil {
		next.Info.Title = *patch.Title
	}
	if patch.Version != nil {
		next.Info.Version = *patch.Version
	}
	if patch.Description != nil {
		next.Info.Description = *patch.Description
	}
	return next, nil
}

// AddServer appends a server entry.
func (e *Engine) AddServer(doc *model.Document, url, description string) (*model.Document, error) {
	url = trimName(url)
	if url == "" {
		return doc, fmt.Errorf("server url: %w", ErrInvalidName)
	}
	next := doc.Clone()
	next.Servers = append(next.Servers, model.Server{URL: url, Description: description})
	return next, nil
}

// DeleteServer removes every server entry with the given URL. No-op when
// none match.
func (e *Engine) DeleteServer(doc *model.Document, url string) (*model.Document, error) {
	next := doc.Clone()
	servers := next.Servers[:0]
	for _, s := range next.Servers {
		if s.URL != url {
			servers = append(servers, s)
		}
	}
	next.Servers = servers
	return next, nil
}
