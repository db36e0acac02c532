package engine

import (
	"fmt"

	"github.com/kolah/oasforge/internal/model"
)

// CreateSchema inserts a new named schema, an object with no properties.
func (e *Engine) CreateSchema(doc *model.Document, name string) (*model.Document, error) {
	name = trimName(name)
	if name == "" {
		return doc, fmt.Errorf("schema name: %w", ErrInvalidName)
	}
	if _, ok := doc.Schemas.Get(name); ok {
		return doc, fmt.Errorf("schema %q: %w", name, ErrDuplicateName)
	}
	next := doc.Clone()
	next.Schemas.Set(name, model.NewObjectSchema())
	return next, nil
}

// DeleteSchema removes a named schema. References to it elsewhere are left
// alone; the count of now-dangling references is returned so the host can
// warn. No-op when the name is absent.
func (e *Engine) DeleteSchema(doc *model.Document, name string) (*model.Document, int, error) {
	if _, ok := doc.Schemas.Get(name); !ok {
		return doc, 0, nil
	}
	next := doc.Clone()
	next.Schemas.Delete(name)
	next.DropStashedProperties(name)
	return next, next.CountRefs(name), nil
}

// SetSchemaType replaces the schema's variant. Sub-state that is meaningless
// to the new variant is dropped, except object properties, which are stashed
// and restored if the schema comes back to object untouched.
func (e *Engine) SetSchemaType(doc *model.Document, name string, variant model.SchemaVariant) (*model.Document, error) {
	if _, ok := doc.Schemas.Get(name); !ok {
		return doc, fmt.Errorf("schema %q: %w", name, ErrNotFound)
	}
	next := doc.Clone()
	node, _ := next.Schemas.Get(name)
	node.Variant = e.switchVariant(next, name, name, node.Variant, variant)
	return next, nil
}

// switchVariant applies the variant change for the schema or property
// identified by stash key, handling the property stash and the
// array-of-object side effect. Returns the variant to store.
func (e *Engine) switchVariant(doc *model.Document, key, itemsBase string, old, next model.SchemaVariant) model.SchemaVariant {
	if oldObj, ok := old.(model.Object); ok {
		if _, stillObj := next.(model.Object); !stillObj {
			doc.StashProperties(key, oldObj.Properties)
		}
	}

	switch v := next.(type) {
	case model.Object:
		if v.Properties == nil || v.Properties.Len() == 0 {
			if stashed := doc.TakeStashedProperties(key); stashed != nil {
				v.Properties = stashed
			}
		} else {
			doc.DropStashedProperties(key)
		}
		if v.Properties == nil {
			v = model.NewObject()
		}
		return v
	case model.Array:
		v.Items = e.resolveArrayItems(doc, itemsBase, v.Items)
		return v
	default:
		return next
	}
}

// resolveArrayItems turns an inline object item schema into a reference to a
// named "<base><suffix>" schema, creating it in the table when absent.
// Deterministic and idempotent: repeating the same edit reuses the schema.
func (e *Engine) resolveArrayItems(doc *model.Document, base string, items *model.SchemaNode) *model.SchemaNode {
	if items == nil {
		return model.NewStringSchema()
	}
	obj, ok := items.Variant.(model.Object)
	if !ok {
		return items
	}
	itemsName := base + e.opts.ItemsSuffix
	if _, exists := doc.Schemas.Get(itemsName); !exists {
		schema := &model.SchemaNode{Variant: obj}
		if obj.Properties == nil {
			schema.Variant = model.NewObject()
		}
		doc.Schemas.Set(itemsName, schema)
	}
	return &model.SchemaNode{Variant: model.Reference{Target: itemsName}}
}

// SetSchemaExposure replaces the schema's exposure channels. An empty set
// clears the attribute; nothing is serialized for it.
func (e *Engine) SetSchemaExposure(doc *model.Document, name string, channels model.ChannelSet) (*model.Document, error) {
	if _, ok := doc.Schemas.Get(name); !ok {
		return doc, fmt.Errorf("schema %q: %w", name, ErrNotFound)
	}
	next := doc.Clone()
	node, _ := next.Schemas.Get(name)
	node.Exposure = channels.Clone()
	return next, nil
}

// AddProperty adds a string property to an object schema.
func (e *Engine) AddProperty(doc *model.Document, schemaName, propName string) (*model.Document, error) {
	propName = trimName(propName)
	if propName == "" {
		return doc, fmt.Errorf("property name: %w", ErrInvalidName)
	}
	obj, err := objectVariant(doc, schemaName)
	if err != nil {
		return doc, err
	}
	if _, ok := obj.Properties.Get(propName); ok {
		return doc, fmt.Errorf("property %q on schema %q: %w", propName, schemaName, ErrDuplicateName)
	}
	next := doc.Clone()
	obj, _ = objectVariant(next, schemaName)
	obj.Properties.Set(propName, model.NewStringSchema())
	return next, nil
}

// DeleteProperty removes a property. No-op when the schema is not an object
// or the property is absent.
func (e *Engine) DeleteProperty(doc *model.Document, schemaName, propName string) (*model.Document, error) {
	obj, err := objectVariant(doc, schemaName)
	if err != nil {
		return doc, nil
	}
	if _, ok := obj.Properties.Get(propName); !ok {
		return doc, nil
	}
	next := doc.Clone()
	obj, _ = objectVariant(next, schemaName)
	obj.Properties.Delete(propName)
	next.DropStashedProperties(stashKey(schemaName, propName))
	return next, nil
}

// SetPropertyType replaces a property's variant, with the same stash and
// array-of-object contracts as SetSchemaType, scoped to the property.
func (e *Engine) SetPropertyType(doc *model.Document, schemaName, propName string, variant model.SchemaVariant) (*model.Document, error) {
	obj, err := objectVariant(doc, schemaName)
	if err != nil {
		return doc, err
	}
	if _, ok := obj.Properties.Get(propName); !ok {
		return doc, fmt.Errorf("property %q on schema %q: %w", propName, schemaName, ErrNotFound)
	}
	next := doc.Clone()
	obj, _ = objectVariant(next, schemaName)
	prop, _ := obj.Properties.Get(propName)
	prop.Variant = e.switchVariant(next, stashKey(schemaName, propName), schemaName+"_"+propName, prop.Variant, variant)
	return next, nil
}

// SetPropertyExposure replaces a property's exposure channels.
func (e *Engine) SetPropertyExposure(doc *model.Document, schemaName, propName string, channels model.ChannelSet) (*model.Document, error) {
	obj, err := objectVariant(doc, schemaName)
	if err != nil {
		return doc, err
	}
	if _, ok := obj.Properties.Get(propName); !ok {
		return doc, fmt.Errorf("property %q on schema %q: %w", propName, schemaName, ErrNotFound)
	}
	next := doc.Clone()
	obj, _ = objectVariant(next, schemaName)
	prop, _ := obj.Properties.Get(propName)
	prop.Exposure = channels.Clone()
	return next, nil
}

func stashKey(schemaName, propName string) string {
	return schemaName + "." + propName
}

func objectVariant(doc *model.Document, schemaName string) (model.Object, error) {
	node, ok := doc.Schemas.Get(schemaName)
	if !ok {
		return model.Object{}, fmt.Errorf("schema %q: %w", schemaName, ErrNotFound)
	}
	obj, ok := node.Variant.(model.Object)
	if !ok {
		return model.Object{}, fmt.Errorf("schema %q: %w", schemaName, ErrNotObject)
	}
	return obj, nil
}
