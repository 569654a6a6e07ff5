package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	profileTable  = "profile_fields"
	llmEventTable = "llm_request_events"
)

var (
	// ProfileFieldsColumns holds one row per profile key.
	ProfileFieldsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Size: 64},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProfileFieldsTable is keyed by profile key.
	ProfileFieldsTable = &schema.Table{
		Name:       profileTable,
		Columns:    ProfileFieldsColumns,
		PrimaryKey: []*schema.Column{ProfileFieldsColumns[0]},
	}

	// LLMRequestEventsColumns records one LLM call per row.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable is append-only.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmEventTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[1]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[4]}},
		},
	}

	// Tables lists all tables managed by the store.
	Tables = []*schema.Table{
		ProfileFieldsTable,
		LLMRequestEventsTable,
	}
)
