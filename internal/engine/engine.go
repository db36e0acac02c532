// Package engine is the only place documents change. Every operation is a
// pure transition: it deep-copies the input document, applies one edit to
// the copy and returns it. On failure the input is returned untouched, so a
// caller never observes a half-applied edit.
package engine

import "strings"

// Options tune engine behavior that the original leaves ambiguous.
type Options struct {
	// DedupeTags makes AddTag drop exact duplicates instead of appending.
	DedupeTags bool

	// ItemsSuffix names the schema auto-created for array-of-object items,
	// appended to the owning schema or property name. Defaults to "_items".
	ItemsSuffix string
}

type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	if opts.ItemsSuffix == "" {
		opts.ItemsSuffix = "_items"
	}
	return &Engine{opts: opts}
}

// Default returns an engine with default options.
func Default() *Engine {
	return New(Options{})
}

func trimName(s string) string {
	return strings.TrimSpace(s)
}
