package model

import (
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"
)

// SchemaNode is one node in a schema tree: a variant plus the exposure
// channels the node is published on. Exactly one variant is held at a time;
// there is no partially-populated state to keep consistent.
type SchemaNode struct {
	Variant  SchemaVariant
	Exposure ChannelSet
}

// SchemaVariant is the closed set of schema shapes. Implemented by
// Primitive, Object, Array and Reference only.
type SchemaVariant interface {
	schemaVariant()
}

type PrimitiveKind string

const (
	KindString  PrimitiveKind = "string"
	KindNumber  PrimitiveKind = "number"
	KindBoolean PrimitiveKind = "boolean"
)

// Primitive is a scalar schema.
type Primitive struct {
	Kind PrimitiveKind
}

// Object is a schema with named properties. Properties keep insertion order
// and property names are unique within the node.
type Object struct {
	Properties *orderedmap.Map[string, *SchemaNode]
}

// Array is a homogeneous list schema.
type Array struct {
	Items *SchemaNode
}

// Reference points at a named entry in the document's schema table.
// Target holds the bare schema name, not the full JSON pointer.
type Reference struct {
	Target string
}

func (Primitive) schemaVariant() {}
func (Object) schemaVariant()    {}
func (Array) schemaVariant()     {}
func (Reference) schemaVariant() {}

// NewObject returns an Object variant with an empty property map.
func NewObject() Object {
	return Object{Properties: orderedmap.New[string, *SchemaNode]()}
}

// NewObjectSchema is the default shape for a freshly created named schema.
func NewObjectSchema() *SchemaNode {
	return &SchemaNode{Variant: NewObject()}
}

// NewStringSchema is the default shape for a freshly created property.
func NewStringSchema() *SchemaNode {
	return &SchemaNode{Variant: Primitive{Kind: KindString}}
}

// RefName extracts the schema name from a reference string. Accepts either a
// bare name or a JSON pointer such as "#/components/schemas/User".
func RefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// RefPointer renders a schema name as the JSON pointer used on the wire.
func RefPointer(name string) string {
	return "#/components/schemas/" + name
}

// Clone deep-copies the node.
func (n *SchemaNode) Clone() *SchemaNode {
	if n == nil {
		return nil
	}
	out := &SchemaNode{Exposure: n.Exposure.Clone()}
	switch v := n.Variant.(type) {
	case Primitive:
		out.Variant = v
	case Reference:
		out.Variant = v
	case Array:
		out.Variant = Array{Items: v.Items.Clone()}
	case Object:
		out.Variant = Object{Properties: CloneProperties(v.Properties)}
	}
	return out
}

// CloneProperties deep-copies an ordered property map.
func CloneProperties(props *orderedmap.Map[string, *SchemaNode]) *orderedmap.Map[string, *SchemaNode] {
	if props == nil {
		return nil
	}
	out := orderedmap.New[string, *SchemaNode]()
	for name, node := range props.FromOldest() {
		out.Set(name, node.Clone())
	}
	return out
}

// Equal reports structural equality of two schema trees.
func (n *SchemaNode) Equal(other *SchemaNode) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !n.Exposure.Equal(other.Exposure) {
		return false
	}
	switch v := n.Variant.(type) {
	case Primitive:
		o, ok := other.Variant.(Primitive)
		return ok && v.Kind == o.Kind
	case Reference:
		o, ok := other.Variant.(Reference)
		return ok && v.Target == o.Target
	case Array:
		o, ok := other.Variant.(Array)
		return ok && v.Items.Equal(o.Items)
	case Object:
		o, ok := other.Variant.(Object)
		if !ok || v.Properties.Len() != o.Properties.Len() {
			return false
		}
		op := o.Properties.First()
		for p := v.Properties.First(); p != nil; p = p.Next() {
			if op == nil || p.Key() != op.Key() || !p.Value().Equal(op.Value()) {
				return false
			}
			op = op.Next()
		}
		return true
	}
	return false
}
