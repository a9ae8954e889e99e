package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ProgressRecord is the single durable learner profile. Exactly one row
// exists; every engine transition rewrites it whole. The payload is
// schema-versioned JSON so fields can be added without a migration —
// missing fields are default-filled on load.
type ProgressRecord struct {
	ent.Schema
}

func (ProgressRecord) Fields() []ent.Field {
	return []ent.Field{
		field.Int("schema_version").
			Comment("Payload shape version, bumped on breaking changes"),
		field.JSON("data", map[string]any{}).
			Comment("UserProgress as JSON, transient message fields stripped"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last write time"),
	}
}
