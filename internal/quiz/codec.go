package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// blobSchema describes the persisted answers blob: an object keyed by
// decimal question index whose values are strings or string arrays.
var blobSchema = map[string]any{
	"type": "object",
	"patternProperties": map[string]any{
		"^(0|[1-9][0-9]*)$": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
	},
	"additionalProperties": false,
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://psychology-answers.json"
		if err := c.AddResource(url, blobSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// Marshal serializes answers as a JSON object keyed by question index.
func Marshal(a Answers) (string, error) {
	obj := make(map[string]Answer, len(a))
	for i, v := range a {
		if i < 0 {
			return "", fmt.Errorf("negative question index %d", i)
		}
		obj[strconv.Itoa(i)] = v
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("marshal answers: %w", err)
	}
	return string(b), nil
}

// Unmarshal parses a blob produced by Marshal. The blob is validated against
// the answers schema before decoding.
func Unmarshal(blob string) (Answers, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile answers schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("answers schema: %w", err)
	}

	var obj map[string]Answer
	if err := json.Unmarshal([]byte(blob), &obj); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	out := make(Answers, len(obj))
	for k, v := range obj {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("question index %q: %w", k, err)
		}
		out[i] = v
	}
	return out, nil
}
