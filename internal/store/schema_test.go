package store

import (
	"context"
	"slices"
	"testing"

	"entgo.io/ent"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/ent/schema"
)

type entSchema interface {
	Fields() []ent.Field
	Mixin() []ent.Mixin
}

func schemaFields(s entSchema) []string {
	var names []string
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			names = append(names, f.Descriptor().Name)
		}
	}
	for _, f := range s.Fields() {
		names = append(names, f.Descriptor().Name)
	}
	return names
}

func tableColumns(t *testing.T, s *Store, table string) map[string]bool {
	t.Helper()
	rows, err := s.DB().QueryContext(context.Background(), "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		t.Fatalf("table info %s: %v", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan column: %v", err)
		}
		cols[name] = true
	}
	return cols
}

func TestMigrationsMatchEntSchema(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		table  string
		schema entSchema
	}{
		{tableChunks, schema.Chunk{}},
		{tableLLMEvents, schema.LLMRequestEvent{}},
		{tableAttempts, schema.QuizAttempt{}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			cols := tableColumns(t, s, tt.table)
			if !cols["id"] {
				t.Errorf("table %s has no id column", tt.table)
			}

			fields := schemaFields(tt.schema)
			for _, name := range fields {
				if !cols[name] {
					t.Errorf("field %q missing from table %s", name, tt.table)
				}
			}
			// id is implicit in ent unless declared.
			want := len(fields)
			if !slices.Contains(fields, "id") {
				want++
			}
			if len(cols) != want {
				t.Errorf("table %s has %d columns, schema declares %d", tt.table, len(cols), want)
			}
		})
	}
}
