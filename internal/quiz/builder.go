package quiz

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Builder turns extracted records into a Quiz. Records are validated one
// at a time; a bad record is logged and dropped without affecting the rest.
type Builder struct {
	logger *slog.Logger
	now    func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for dropped records.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildQuiz builds a Quiz with the default Builder.
func BuildQuiz(records []Record, citations []string) *Quiz {
	return NewBuilder().Build(records, citations)
}

// Build validates each record, preserving source order. Every question gets
// its own copy of citations. The result may contain zero questions.
func (b *Builder) Build(records []Record, citations []string) *Quiz {
	q := &Quiz{
		ID:        uuid.NewString(),
		CreatedAt: b.now(),
		Questions: []Question{},
	}
	seen := make(map[int]bool, len(records))

	for i, rec := range records {
		question, err := buildQuestion(rec, len(q.Questions)+1, citations)
		if err == nil && seen[question.ID] {
			err = fmt.Errorf("duplicate id %d", question.ID)
		}
		if err != nil {
			verr := &ValidationError{Index: i, Reason: err.Error(), Record: rec}
			q.Dropped = append(q.Dropped, verr)
			b.logger.Warn("dropping question record", "index", i, "reason", verr.Reason)
			continue
		}
		seen[question.ID] = true
		q.Questions = append(q.Questions, question)
	}

	return q
}

func buildQuestion(rec Record, position int, citations []string) (Question, error) {
	if err := validateRecord(rec); err != nil {
		return Question{}, err
	}
	m, ok := rec.(map[string]any)
	if !ok {
		return Question{}, fmt.Errorf("record is not an object")
	}

	id := position
	if raw, present := m["id"]; present {
		n, err := parseID(raw)
		if err != nil {
			return Question{}, err
		}
		id = n
	}

	name, _ := m["qtype"].(string)
	name = strings.ToLower(name)

	var kind Kind
	switch name {
	case KindNameMCQ:
		kind = MultipleChoice{Options: parseOptions(m["options"])}
	case KindNameTF:
		kind = TrueFalse{}
	case KindNameOpen:
		kind = OpenEnded{}
	default:
		return Question{}, fmt.Errorf("unknown qtype %q", name)
	}

	return Question{
		ID:          id,
		Kind:        kind,
		Text:        scalarText(m["question"]),
		Answer:      scalarText(m["answer"]),
		Explanation: scalarText(m["explanation"]),
		Citations:   slices.Clone(citations),
	}, nil
}

// parseID accepts a JSON integer, an integral float, or a string of digits.
// Callers handle a missing id; an explicit null is rejected.
func parseID(v any) (int, error) {
	var n int64
	switch id := v.(type) {
	case nil:
		return 0, fmt.Errorf("id is null")
	case json.Number:
		if i, err := id.Int64(); err == nil {
			n = i
			break
		}
		f, err := id.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("id %s is not an integer", id)
		}
		n = int64(f)
	case float64:
		if id != math.Trunc(id) || math.Abs(id) > math.MaxInt32 {
			return 0, fmt.Errorf("id %v is not an integer", id)
		}
		n = int64(id)
	case int:
		n = int64(id)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(id), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("id %q is not an integer", id)
		}
		n = i
	default:
		return 0, fmt.Errorf("id has unsupported type %T", v)
	}

	if n <= 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("id %d is not positive", n)
	}
	return int(n), nil
}

// parseOptions keeps whatever the model sent as options. List items are
// rendered as text; a lone value becomes a single option.
func parseOptions(v any) []string {
	switch opts := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(opts))
		for _, item := range opts {
			out = append(out, scalarText(item))
		}
		return out
	default:
		return []string{scalarText(opts)}
	}
}

// scalarText renders a scalar JSON value as text. Booleans use the
// capitalized form expected by true/false grading.
func scalarText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return "True"
		}
		return "False"
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}
