// Package codec converts documents to and from their YAML wire form.
// Encoding is deterministic: info keys in fixed order, paths and schemas in
// table order, methods in canonical order. Decoding parses with libopenapi
// and keeps only modeled fields plus the x-exposure extension; anything else
// in the input is dropped.
package codec

import "errors"

// DefaultFilename is the conventional on-disk name for a saved document.
const DefaultFilename = "api.yaml"

// JSONMediaType wraps every request and response body schema.
const JSONMediaType = "application/json"

var (
	// ErrParse marks malformed input text.
	ErrParse = errors.New("parse error")

	// ErrSerialize marks a document the wire grammar cannot represent.
	ErrSerialize = errors.New("serialization error")
)
