package model

import (
	"slices"

	"github.com/pb33f/libopenapi/orderedmap"
)

// DefaultFormatVersion is written into freshly created documents.
const DefaultFormatVersion = "3.0.3"

type Info struct {
	Title       string
	Version     string
	Description string
}

type Server struct {
	URL         string
	Description string
}

// Document is the complete in-memory API description: the unit of load and
// save. It is only ever mutated through the engine package, which replaces
// documents wholesale rather than editing them in place.
type Document struct {
	FormatVersion string
	Info          Info
	Servers       []Server
	Paths         *orderedmap.Map[string, *PathItem]
	Schemas       *orderedmap.Map[string, *SchemaNode]

	// retained stashes Object properties when a schema (or property) is
	// switched away from the object variant, so switching back without
	// touching it in between restores them. Keyed by schema name, or
	// "schema.prop" for properties. Not serialized.
	retained map[string]*orderedmap.Map[string, *SchemaNode]
}

// NewDocument returns the built-in empty skeleton.
func NewDocument() *Document {
	return &Document{
		FormatVersion: DefaultFormatVersion,
		Info:          Info{Title: "New API", Version: "1.0.0"},
		Paths:         orderedmap.New[string, *PathItem](),
		Schemas:       orderedmap.New[string, *SchemaNode](),
	}
}

// Clone deep-copies the document, retained property stash included.
func (d *Document) Clone() *Document {
	out := &Document{
		FormatVersion: d.FormatVersion,
		Info:          d.Info,
		Paths:         orderedmap.New[string, *PathItem](),
		Schemas:       orderedmap.New[string, *SchemaNode](),
	}
	out.Servers = slices.Clone(d.Servers)
	for path, item := range d.Paths.FromOldest() {
		out.Paths.Set(path, item.Clone())
	}
	for name, node := range d.Schemas.FromOldest() {
		out.Schemas.Set(name, node.Clone())
	}
	if d.retained != nil {
		out.retained = make(map[string]*orderedmap.Map[string, *SchemaNode], len(d.retained))
		for key, props := range d.retained {
			out.retained[key] = CloneProperties(props)
		}
	}
	return out
}

// StashProperties records the object properties dropped by a variant switch
// so an unmodified switch back to object can restore them.
func (d *Document) StashProperties(key string, props *orderedmap.Map[string, *SchemaNode]) {
	if props == nil || props.Len() == 0 {
		return
	}
	if d.retained == nil {
		d.retained = make(map[string]*orderedmap.Map[string, *SchemaNode])
	}
	d.retained[key] = props
}

// TakeStashedProperties removes and returns the stash for key, nil if none.
func (d *Document) TakeStashedProperties(key string) *orderedmap.Map[string, *SchemaNode] {
	props, ok := d.retained[key]
	if !ok {
		return nil
	}
	delete(d.retained, key)
	return props
}

// DropStashedProperties discards the stash for key.
func (d *Document) DropStashedProperties(key string) {
	delete(d.retained, key)
}

// DanglingRef is a reference whose target is missing from the schema table.
type DanglingRef struct {
	Location string // where the reference lives, e.g. "paths./users.get.responses.200"
	Target   string // the missing schema name
}

// DanglingRefs walks the document and lists every reference that does not
// resolve against the schema table. Deleting a schema never cascades, so
// these can accumulate during editing; they are reported, not repaired.
func (d *Document) DanglingRefs() []DanglingRef {
	var out []DanglingRef

	resolve := func(loc string, ref *Reference) {
		if ref == nil {
			return
		}
		if _, ok := d.Schemas.Get(ref.Target); !ok {
			out = append(out, DanglingRef{Location: loc, Target: ref.Target})
		}
	}

	var walkSchema func(loc string, node *SchemaNode)
	walkSchema = func(loc string, node *SchemaNode) {
		if node == nil {
			return
		}
		switch v := node.Variant.(type) {
		case Reference:
			resolve(loc, &v)
		case Array:
			walkSchema(loc+".items", v.Items)
		case Object:
			for name, prop := range v.Properties.FromOldest() {
				walkSchema(loc+".properties."+name, prop)
			}
		}
	}

	for name, node := range d.Schemas.FromOldest() {
		walkSchema("schemas."+name, node)
	}
	for path, item := range d.Paths.FromOldest() {
		for method, op := range item.Operations.FromOldest() {
			loc := "paths." + path + "." + string(method)
			resolve(loc+".requestBody", op.Request)
			for code, resp := range op.Responses.FromOldest() {
				resolve(loc+".responses."+code, resp.Schema)
			}
		}
	}
	return out
}

// CountRefs returns how many references anywhere in the document point at
// the given schema name, whether or not that name resolves.
func (d *Document) CountRefs(name string) int {
	count := 0
	var walkSchema func(node *SchemaNode)
	walkSchema = func(node *SchemaNode) {
		if node == nil {
			return
		}
		switch v := node.Variant.(type) {
		case Reference:
			if v.Target == name {
				count++
			}
		case Array:
			walkSchema(v.Items)
		case Object:
			for _, prop := range v.Properties.FromOldest() {
				walkSchema(prop)
			}
		}
	}
	for _, node := range d.Schemas.FromOldest() {
		walkSchema(node)
	}
	for _, item := range d.Paths.FromOldest() {
		for _, op := range item.Operations.FromOldest() {
			if op.Request != nil && op.Request.Target == name {
				count++
			}
			for _, resp := range op.Responses.FromOldest() {
				if resp.Schema != nil && resp.Schema.Target == name {
					count++
				}
			}
		}
	}
	return count
}

// Equal reports structural equality, ignoring the retained-property stash
// and ignoring table order for paths and schemas.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.FormatVersion != other.FormatVersion || d.Info != other.Info {
		return false
	}
	if len(d.Servers) != len(other.Servers) {
		return false
	}
	for i, s := range d.Servers {
		if s != other.Servers[i] {
			return false
		}
	}
	if d.Paths.Len() != other.Paths.Len() || d.Schemas.Len() != other.Schemas.Len() {
		return false
	}
	for path, item := range d.Paths.FromOldest() {
		otherItem, ok := other.Paths.Get(path)
		if !ok || !item.Equal(otherItem) {
			return false
		}
	}
	for name, node := range d.Schemas.FromOldest() {
		otherNode, ok := other.Schemas.Get(name)
		if !ok || !node.Equal(otherNode) {
			return false
		}
	}
	return true
}
