// Package llm is a thin provider-neutral layer over the hosted model APIs
// used for role recommendations.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
)

// Provider generates one structured reply per call.
type Provider interface {
	// Generate sends req and returns the model's reply. When req.Schema is
	// set the reply Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the reply. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	// Purpose labels the request in the event log. It is never sent to
	// the provider.
	Purpose string
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the reply must satisfy.
type Schema struct {
	// Name is kebab-case and doubles as the provider-side schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the model's reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage is token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// finish turns the raw text of a reply into Response content. A reply cut
// off by the token limit is a *TruncatedError. With a schema the text must
// be JSON that satisfies it; models sometimes wrap it in a Markdown fence,
// which is removed first.
func finish(req Request, text, stop string) (json.RawMessage, error) {
	if req.Schema == nil {
		if stop == StopMaxTokens {
			return nil, &TruncatedError{Content: json.RawMessage(text)}
		}
		quoted, err := json.Marshal(text)
		if err != nil {
			return nil, err
		}
		return quoted, nil
	}

	content := json.RawMessage(stripFence([]byte(text)))
	if stop == StopMaxTokens {
		return nil, &TruncatedError{Content: content}
	}
	if err := schemas.validate(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

func stripFence(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	} else {
		return b
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}
