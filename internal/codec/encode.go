package codec

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/kolah/oasforge/internal/model"
)

// Encode renders the document as YAML. Dangling references are legal while
// editing, so they come back as warnings rather than errors; the caller
// decides whether to surface them. On error no partial output is returned.
func Encode(doc *model.Document) ([]byte, []string, error) {
	root := encodeDocument(doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrSerialize, err)
	}
	if err := enc.Close(); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrSerialize, err)
	}

	var warnings []string
	for _, ref := range doc.DanglingRefs() {
		warnings = append(warnings, fmt.Sprintf("dangling reference to %q at %s", ref.Target, ref.Location))
	}
	return buf.Bytes(), warnings, nil
}

func encodeDocument(doc *model.Document) *yaml.Node {
	root := mapping()
	put(root, "openapi", scalar(doc.FormatVersion))

	info := mapping()
	put(info, "title", scalar(doc.Info.Title))
	put(info, "version", scalar(doc.Info.Version))
	if doc.Info.Description != "" {
		put(info, "description", scalar(doc.Info.Description))
	}
	put(root, "info", info)

	if len(doc.Servers) > 0 {
		servers := sequence()
		for _, s := range doc.Servers {
			server := mapping()
			put(server, "url", scalar(s.URL))
			if s.Description != "" {
				put(server, "description", scalar(s.Description))
			}
			servers.Content = append(servers.Content, server)
		}
		put(root, "servers", servers)
	}

	if doc.Paths.Len() > 0 {
		paths := mapping()
		for path, item := range doc.Paths.FromOldest() {
			paths.Content = append(paths.Content, scalar(path), encodePathItem(item))
		}
		put(root, "paths", paths)
	}

	if doc.Schemas.Len() > 0 {
		schemas := mapping()
		for name, node := range doc.Schemas.FromOldest() {
			schemas.Content = append(schemas.Content, scalar(name), encodeSchema(node))
		}
		components := mapping()
		put(components, "schemas", schemas)
		put(root, "components", components)
	}

	return root
}

func encodePathItem(item *model.PathItem) *yaml.Node {
	out := mapping()
	// Canonical method order, independent of edit order.
	for _, method := range model.Methods() {
		op, ok := item.Operations.Get(method)
		if !ok {
			continue
		}
		put(out, string(method), encodeOperation(op))
	}
	return out
}

func encodeOperation(op *model.OperationNode) *yaml.Node {
	out := mapping()
	if op.Summary != "" {
		put(out, "summary", scalar(op.Summary))
	}
	if op.Description != "" {
		put(out, "description", scalar(op.Description))
	}
	if op.OperationID != "" {
		put(out, "operationId", scalar(op.OperationID))
	}
	if len(op.Tags) > 0 {
		tags := sequence()
		for _, tag := range op.Tags {
			tags.Content = append(tags.Content, scalar(tag))
		}
		put(out, "tags", tags)
	}
	putExposure(out, op.Exposure)
	if op.Request != nil {
		body := mapping()
		put(body, "content", jsonContent(op.Request))
		put(out, "requestBody", body)
	}

	responses := mapping()
	for code, resp := range op.Responses.FromOldest() {
		response := mapping()
		put(response, "description", scalar(resp.Description))
		if resp.Schema != nil {
			put(response, "content", jsonContent(resp.Schema))
		}
		put(responses, code, response)
	}
	put(out, "responses", responses)
	return out
}

func encodeSchema(node *model.SchemaNode) *yaml.Node {
	out := mapping()
	switch v := node.Variant.(type) {
	case model.Primitive:
		put(out, "type", scalar(string(v.Kind)))
	case model.Reference:
		put(out, "$ref", scalar(model.RefPointer(v.Target)))
	case model.Array:
		put(out, "type", scalar("array"))
		put(out, "items", encodeSchema(v.Items))
	case model.Object:
		put(out, "type", scalar("object"))
		if v.Properties.Len() > 0 {
			props := mapping()
			for name, prop := range v.Properties.FromOldest() {
				props.Content = append(props.Content, scalar(name), encodeSchema(prop))
			}
			put(out, "properties", props)
		}
	}
	putExposure(out, node.Exposure)
	return out
}

func jsonContent(ref *model.Reference) *yaml.Node {
	schema := mapping()
	put(schema, "$ref", scalar(model.RefPointer(ref.Target)))
	media := mapping()
	put(media, "schema", schema)
	content := mapping()
	put(content, JSONMediaType, media)
	return content
}

// putExposure writes the x-exposure extension verbatim; an empty set emits
// nothing at all rather than an empty value.
func putExposure(m *yaml.Node, channels model.ChannelSet) {
	if channels.IsEmpty() {
		return
	}
	put(m, model.ExposureExtension, scalar(channels.String()))
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func put(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
