package codec

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"

	"github.com/kolah/oasforge/internal/model"
)

// Decode parses YAML or JSON text into a document. Two stages: libopenapi
// parses and builds the high-level v3 model, then the model is mapped into
// the typed document. No grammar validation happens here; the loaded shape
// is trusted. References are carried by name and never resolved, so a
// document saved with dangling references loads back fine.
func Decode(data []byte) (*model.Document, error) {
	parsed, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	version := parsed.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("%w: unsupported format version %q", ErrParse, version)
	}

	// Build errors for unresolved references are tolerated; the transform
	// below reads references by name without resolving them.
	built, err := parsed.BuildV3Model()
	if built == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	return transform(version, &built.Model), nil
}

func transform(version string, src *v3.Document) *model.Document {
	doc := model.NewDocument()
	doc.FormatVersion = version

	if src.Info != nil {
		doc.Info = model.Info{
			Title:       src.Info.Title,
			Version:     src.Info.Version,
			Description: src.Info.Description,
		}
	}
	doc.Servers = nil
	for _, s := range src.Servers {
		doc.Servers = append(doc.Servers, model.Server{URL: s.URL, Description: s.Description})
	}

	if src.Paths != nil && src.Paths.PathItems != nil {
		for path, item := range src.Paths.PathItems.FromOldest() {
			doc.Paths.Set(path, transformPathItem(item))
		}
	}

	if src.Components != nil && src.Components.Schemas != nil {
		for name, proxy := range src.Components.Schemas.FromOldest() {
			doc.Schemas.Set(name, transformSchemaProxy(proxy))
		}
	}

	return doc
}

func transformPathItem(item *v3.PathItem) *model.PathItem {
	out := model.NewPathItem()

	methods := []struct {
		method model.Method
		op     *v3.Operation
	}{
		{model.MethodGet, item.Get},
		{model.MethodPost, item.Post},
		{model.MethodPut, item.Put},
		{model.MethodDelete, item.Delete},
		{model.MethodPatch, item.Patch},
		{model.MethodOptions, item.Options},
		{model.MethodHead, item.Head},
	}
	for _, m := range methods {
		if m.op == nil {
			continue
		}
		out.Operations.Set(m.method, transformOperation(m.op))
	}
	return out
}

func transformOperation(src *v3.Operation) *model.OperationNode {
	op := &model.OperationNode{
		Summary:     src.Summary,
		Description: src.Description,
		OperationID: src.OperationId,
		Tags:        src.Tags,
		Exposure:    exposureFromExtensions(src.Extensions),
		Responses:   orderedmap.New[string, *model.Response](),
	}

	if src.RequestBody != nil && src.RequestBody.Content != nil {
		if media, ok := src.RequestBody.Content.Get(JSONMediaType); ok {
			op.Request = referenceFromProxy(media.Schema)
		}
	}

	if src.Responses != nil && src.Responses.Codes != nil {
		for code, resp := range src.Responses.Codes.FromOldest() {
			response := &model.Response{Description: resp.Description}
			if resp.Content != nil {
				if media, ok := resp.Content.Get(JSONMediaType); ok {
					response.Schema = referenceFromProxy(media.Schema)
				}
			}
			op.Responses.Set(code, response)
		}
	}
	if op.Responses.Len() == 0 {
		code, resp := model.DefaultResponse()
		op.Responses.Set(code, resp)
	}
	return op
}

// referenceFromProxy reads a schema link by name without resolving it.
func referenceFromProxy(proxy *base.SchemaProxy) *model.Reference {
	if proxy == nil {
		return nil
	}
	if ref := proxy.GetReference(); ref != "" {
		return &model.Reference{Target: model.RefName(ref)}
	}
	return nil
}

func transformSchemaProxy(proxy *base.SchemaProxy) *model.SchemaNode {
	if proxy == nil {
		return model.NewStringSchema()
	}
	if ref := proxy.GetReference(); ref != "" {
		node := &model.SchemaNode{Variant: model.Reference{Target: model.RefName(ref)}}
		if low := proxy.GoLow(); low != nil {
			// When the reference resolves, libopenapi points the proxy's
			// value node at the target schema and keeps the ref-site mapping
			// on the reference node; when it dangles, the value node is the
			// ref-site mapping itself. Check both.
			node.Exposure = exposureFromNode(low.GetReferenceNode())
			if node.Exposure == nil {
				node.Exposure = exposureFromNode(low.GetValueNode())
			}
		}
		return node
	}
	return transformSchema(proxy.Schema())
}

func transformSchema(src *base.Schema) *model.SchemaNode {
	if src == nil {
		return model.NewStringSchema()
	}

	node := &model.SchemaNode{Exposure: exposureFromExtensions(src.Extensions)}

	kind := ""
	if len(src.Type) > 0 {
		kind = src.Type[0]
	}

	switch kind {
	case "object":
		obj := model.NewObject()
		if src.Properties != nil {
			for name, prop := range src.Properties.FromOldest() {
				obj.Properties.Set(name, transformSchemaProxy(prop))
			}
		}
		node.Variant = obj
	case "array":
		var items *model.SchemaNode
		if src.Items != nil && src.Items.A != nil {
			items = transformSchemaProxy(src.Items.A)
		}
		if items == nil {
			items = model.NewStringSchema()
		}
		node.Variant = model.Array{Items: items}
	case "boolean":
		node.Variant = model.Primitive{Kind: model.KindBoolean}
	case "number", "integer":
		node.Variant = model.Primitive{Kind: model.KindNumber}
	default:
		// Untyped schemas with properties are treated as objects; anything
		// else falls back to string.
		if src.Properties != nil && src.Properties.Len() > 0 {
			obj := model.NewObject()
			for name, prop := range src.Properties.FromOldest() {
				obj.Properties.Set(name, transformSchemaProxy(prop))
			}
			node.Variant = obj
		} else {
			node.Variant = model.Primitive{Kind: model.KindString}
		}
	}
	return node
}

func exposureFromExtensions(extensions *orderedmap.Map[string, *yaml.Node]) model.ChannelSet {
	if extensions == nil {
		return nil
	}
	node, ok := extensions.Get(model.ExposureExtension)
	if !ok {
		return nil
	}
	return channelsFromScalar(node)
}

// exposureFromNode reads x-exposure from a raw mapping node, used for
// reference sites where libopenapi folds extensions into the target schema.
func exposureFromNode(node *yaml.Node) model.ChannelSet {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == model.ExposureExtension {
			return channelsFromScalar(node.Content[i+1])
		}
	}
	return nil
}

func channelsFromScalar(node *yaml.Node) model.ChannelSet {
	if node == nil || node.Kind != yaml.ScalarNode {
		return nil
	}
	channels, err := model.ParseChannels(node.Value)
	if err != nil {
		// Unknown channel names in loaded text are dropped, not fatal.
		return nil
	}
	return channels
}
