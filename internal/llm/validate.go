package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemas compiles each Schema once, keyed by name.
var schemas = newSchemaRegistry()

type schemaRegistry struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{compiled: make(map[string]*jsonschema.Schema)}
}

// validate checks raw against s. Any failure, including a schema that does
// not compile, is an *InvalidResponseError carrying raw.
func (r *schemaRegistry) validate(s *Schema, raw json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	compiled, err := r.get(s)
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &InvalidResponseError{Content: raw, Err: err}
	}
	return nil
}

func (r *schemaRegistry) get(s *Schema) (*jsonschema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.compiled[s.Name]; ok {
		return c, nil
	}

	// Round-trip the definition so the compiler sees json.Number values.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	r.compiled[s.Name] = compiled
	return compiled, nil
}

// Validate checks raw against s without calling a provider.
func Validate(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	return schemas.validate(s, raw)
}
