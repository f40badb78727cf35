package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Chunk is one passage of ingested course material. Its content is
// mirrored into the chunks_fts full-text table, keyed by rowid.
type Chunk struct {
	ent.Schema
}

func (Chunk) Fields() []ent.Field {
	return []ent.Field{
		field.String("source").
			Comment("Path of the ingested file"),
		field.Int("page").
			Optional().
			Nillable().
			Comment("0-based page number, null when the file has no pages"),
		field.Int("position").
			Comment("Order of the chunk within its source"),
		field.Text("content"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Chunk) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("source"),
	}
}
