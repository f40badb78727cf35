package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAttempt is one graded quiz. The quiz and its result are kept as JSON
// documents alongside the headline score.
type QuizAttempt struct {
	ent.Schema
}

func (QuizAttempt) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID of the attempt"),
		field.String("quiz_id"),
		field.String("topic").
			Default("").
			Comment("Empty for random quizzes"),
		field.Int("question_count"),
		field.Float("total_score"),
		field.Float("max_score"),
		field.Float("percentage"),
		field.String("report_path").
			Default(""),
		field.Text("quiz_json"),
		field.Text("result_json"),
	}
}

func (QuizAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("quiz_id"),
	}
}
