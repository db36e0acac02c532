package engine

import (
	"fmt"
	"slices"

	"github.com/kolah/oasforge/internal/model"
)

// AddOperation attaches a method to a path. Method matching is
// case-insensitive; the stored key is lower-case. The new operation starts
// with a default summary and a 200/OK response.
func (e *Engine) AddOperation(doc *model.Document, path, method string) (*model.Document, error) {
	m, ok := model.NormalizeMethod(method)
	if !ok {
		return doc, fmt.Errorf("method %q: %w", method, ErrInvalidName)
	}
	item, ok := doc.Paths.Get(path)
	if !ok {
		return doc, fmt.Errorf("path %q: %w", path, ErrNotFound)
	}
	if _, ok := item.Operations.Get(m); ok {
		return doc, fmt.Errorf("operation %s %s: %w", m, path, ErrDuplicateName)
	}
	next := doc.Clone()
	item, _ = next.Paths.Get(path)
	item.Operations.Set(m, model.NewOperation(m))
	return next, nil
}

// DeleteOperation removes a method from a path. No-op when absent.
func (e *Engine) DeleteOperation(doc *model.Document, path, method string) (*model.Document, error) {
	m, op := e.lookupOperation(doc, path, method)
	if op == nil {
		return doc, nil
	}
	next := doc.Clone()
	item, _ := next.Paths.Get(path)
	item.Operations.Delete(m)
	return next, nil
}

// FieldPatch carries a partial update of an operation's metadata. Nil
// pointers leave the corresponding field untouched.
type FieldPatch struct {
	Summary     *string
	Description *string
	OperationID *string
}

// UpdateOperationFields merges the patch into the operation.
func (e *Engine) UpdateOperationFields(doc *model.Document, path, method string, patch FieldPatch) (*model.Document, error) {
	if _, op := e.lookupOperation(doc, path, method); op == nil {
		return doc, fmt.Errorf("operation %s %s: %w", method, path, ErrNotFound)
	}
	next := doc.Clone()
	_, op := e.lookupOperation(next, path, method)
	if patch.Summary != nil {
		op.Summary = *patch.Summary
	}
	if patch.Description != nil {
		op.Description = *patch.Description
	}
	if patch.OperationID != nil {
		op.OperationID = *patch.OperationID
	}
	return next, nil
}

// SetOperationExposure replaces the operation's exposure channels.
func (e *Engine) SetOperationExposure(doc *model.Document, path, method string, channels model.ChannelSet) (*model.Document, error) {
	if _, op := e.lookupOperation(doc, path, method); op == nil {
		return doc, fmt.Errorf("operation %s %s: %w", method, path, ErrNotFound)
	}
	next := doc.Clone()
	_, op := e.lookupOperation(next, path, method)
	op.Exposure = channels.Clone()
	return next, nil
}

// SetOperationRequestSchema points the JSON request body at a named schema.
// An empty ref removes the request body entirely.
func (e *Engine) SetOperationRequestSchema(doc *model.Document, path, method, ref string) (*model.Document, error) {
	if _, op := e.lookupOperation(doc, path, method); op == nil {
		return doc, fmt.Errorf("operation %s %s: %w", method, path, ErrNotFound)
	}
	next := doc.Clone()
	_, op := e.lookupOperation(next, path, method)
	name := model.RefName(ref)
	if name == "" {
		op.Request = nil
	} else {
		op.Request = &model.Reference{Target: name}
	}
	return next, nil
}

// SetOperationResponseSchema points one response's JSON body at a named
// schema. An empty ref clears the body but keeps the response and its
// description. Setting a ref on a status that does not exist yet creates the
// response with an "OK" description.
func (e *Engine) SetOperationResponseSchema(doc *model.Document, path, method, status, ref string) (*model.Document, error) {
	if _, op := e.lookupOperation(doc, path, method); op == nil {
		return doc, fmt.Errorf("operation %s %s: %w", method, path, ErrNotFound)
	}
	next := doc.Clone()
	_, op := e.lookupOperation(next, path, method)
	name := model.RefName(ref)

	resp, ok := op.Responses.Get(status)
	if !ok {
		if name == "" {
			return doc, nil
		}
		resp = &model.Response{Description: "OK"}
		op.Responses.Set(status, resp)
	}
	if name == "" {
		resp.Schema = nil
	} else {
		resp.Schema = &model.Reference{Target: name}
		if resp.Description == "" {
			resp.Description = "OK"
		}
	}
	return next, nil
}

// AddTag appends a tag. Blank tags are ignored; duplicates are kept unless
// the engine was built with DedupeTags.
func (e *Engine) AddTag(doc *model.Document, path, method, tag string) (*model.Document, error) {
	tag = trimName(tag)
	_, op := e.lookupOperation(doc, path, method)
	if op == nil {
		return doc, fmt.Errorf("operation %s %s: %w", method, path, ErrNotFound)
	}
	if tag == "" {
		return doc, nil
	}
	if e.opts.DedupeTags && slices.Contains(op.Tags, tag) {
		return doc, nil
	}
	next := doc.Clone()
	_, op = e.lookupOperation(next, path, method)
	op.Tags = append(op.Tags, tag)
	return next, nil
}

// DeleteTag removes every exact match of tag from the operation.
func (e *Engine) DeleteTag(doc *model.Document, path, method, tag string) (*model.Document, error) {
	if _, op := e.lookupOperation(doc, path, method); op == nil {
		return doc, fmt.Errorf("operation %s %s: %w", method, path, ErrNotFound)
	}
	next := doc.Clone()
	_, op := e.lookupOperation(next, path, method)
	op.Tags = slices.DeleteFunc(op.Tags, func(t string) bool { return t == tag })
	return next, nil
}

func (e *Engine) lookupOperation(doc *model.Document, path, method string) (model.Method, *model.OperationNode) {
	m, ok := model.NormalizeMethod(method)
	if !ok {
		return m, nil
	}
	item, ok := doc.Paths.Get(path)
	if !ok {
		return m, nil
	}
	op, ok := item.Operations.Get(m)
	if !ok {
		return m, nil
	}
	return m, op
}
