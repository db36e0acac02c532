package model

import (
	"slices"
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"
)

// Method is a lower-cased HTTP method, the key form used in the path table.
type Method string

const (
	MethodGet     Method = "get"
	MethodPost    Method = "post"
	MethodPut     Method = "put"
	MethodDelete  Method = "delete"
	MethodPatch   Method = "patch"
	MethodOptions Method = "options"
	MethodHead    Method = "head"
)

// Methods returns the supported HTTP methods in canonical order.
func Methods() []Method {
	return []Method{
		MethodGet, MethodPost, MethodPut, MethodDelete,
		MethodPatch, MethodOptions, MethodHead,
	}
}

// NormalizeMethod lower-cases and validates a method string.
func NormalizeMethod(s string) (Method, bool) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	return m, slices.Contains(Methods(), m)
}

// OperationNode is one HTTP method entry under a path.
type OperationNode struct {
	Summary     string
	Description string
	OperationID string
	Tags        []string
	Exposure    ChannelSet

	// Request is the JSON request body schema link, nil when the operation
	// has no request body.
	Request *Reference

	// Responses is keyed by status code and never empty once the operation
	// exists; a new operation starts with a 200/OK entry.
	Responses *orderedmap.Map[string, *Response]
}

// Response is one status-code entry of an operation.
type Response struct {
	Description string
	// Schema is the JSON body schema link, nil for a body-less response.
	Schema *Reference
}

// DefaultResponse is the entry every new operation starts with.
func DefaultResponse() (string, *Response) {
	return "200", &Response{Description: "OK"}
}

// NewOperation builds the default node for a freshly added method.
func NewOperation(method Method) *OperationNode {
	op := &OperationNode{
		Summary:   "New " + strings.ToUpper(string(method)) + " endpoint",
		Responses: orderedmap.New[string, *Response](),
	}
	code, resp := DefaultResponse()
	op.Responses.Set(code, resp)
	return op
}

// PathItem is the set of operations attached to one path, keyed by method.
type PathItem struct {
	Operations *orderedmap.Map[Method, *OperationNode]
}

func NewPathItem() *PathItem {
	return &PathItem{Operations: orderedmap.New[Method, *OperationNode]()}
}

func (r *Reference) Clone() *Reference {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	return &Response{Description: r.Description, Schema: r.Schema.Clone()}
}

func (o *OperationNode) Clone() *OperationNode {
	if o == nil {
		return nil
	}
	out := &OperationNode{
		Summary:     o.Summary,
		Description: o.Description,
		OperationID: o.OperationID,
		Tags:        slices.Clone(o.Tags),
		Exposure:    o.Exposure.Clone(),
		Request:     o.Request.Clone(),
		Responses:   orderedmap.New[string, *Response](),
	}
	for code, resp := range o.Responses.FromOldest() {
		out.Responses.Set(code, resp.Clone())
	}
	return out
}

func (p *PathItem) Clone() *PathItem {
	if p == nil {
		return nil
	}
	out := NewPathItem()
	for method, op := range p.Operations.FromOldest() {
		out.Operations.Set(method, op.Clone())
	}
	return out
}

func (r *Reference) equal(other *Reference) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Target == other.Target
}

func (r *Response) equal(other *Response) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Description == other.Description && r.Schema.equal(other.Schema)
}

func (o *OperationNode) equal(other *OperationNode) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Summary != other.Summary ||
		o.Description != other.Description ||
		o.OperationID != other.OperationID ||
		!slices.Equal(o.Tags, other.Tags) ||
		!o.Exposure.Equal(other.Exposure) ||
		!o.Request.equal(other.Request) {
		return false
	}
	if o.Responses.Len() != other.Responses.Len() {
		return false
	}
	for code, resp := range o.Responses.FromOldest() {
		otherResp, ok := other.Responses.Get(code)
		if !ok || !resp.equal(otherResp) {
			return false
		}
	}
	return true
}

// Equal reports content equality of two path items, ignoring method order.
func (p *PathItem) Equal(other *PathItem) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Operations.Len() != other.Operations.Len() {
		return false
	}
	for method, op := range p.Operations.FromOldest() {
		otherOp, ok := other.Operations.Get(method)
		if !ok || !op.equal(otherOp) {
			return false
		}
	}
	return true
}
