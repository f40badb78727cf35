package quiz

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Wire names for the question kinds.
const (
	KindNameMCQ  = "mcq"
	KindNameTF   = "tf"
	KindNameOpen = "open"
)

// Kind is the closed set of question kinds. The unexported method keeps
// implementations inside this package, so a type switch over
// MultipleChoice, TrueFalse and OpenEnded is exhaustive.
type Kind interface {
	// Name returns the wire value used in model output and exports.
	Name() string
	kind()
}

// MultipleChoice questions carry their ordered options, conventionally
// prefixed "A. ", "B. " and so on. The reference answer is the letter.
type MultipleChoice struct {
	Options []string
}

// TrueFalse questions are answered with "True" or "False".
type TrueFalse struct{}

// OpenEnded questions are answered in free text and graded by token overlap.
type OpenEnded struct{}

func (MultipleChoice) Name() string { return KindNameMCQ }
func (TrueFalse) Name() string      { return KindNameTF }
func (OpenEnded) Name() string      { return KindNameOpen }

func (MultipleChoice) kind() {}
func (TrueFalse) kind()      {}
func (OpenEnded) kind()      {}

// Question is a single validated quiz item.
type Question struct {
	ID          int
	Kind        Kind
	Text        string
	Answer      string
	Explanation string
	Citations   []string
}

// Options returns the answer options for multiple-choice questions and nil
// for every other kind.
func (q Question) Options() []string {
	if mc, ok := q.Kind.(MultipleChoice); ok {
		return mc.Options
	}
	return nil
}

// KindName returns the wire name of the question kind.
func (q Question) KindName() string {
	if q.Kind == nil {
		return ""
	}
	return q.Kind.Name()
}

// questionJSON is the export shape of a Question. It mirrors the record
// contract the model is asked to produce, plus citations.
type questionJSON struct {
	ID          int      `json:"id"`
	QType       string   `json:"qtype"`
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Citations   []string `json:"citations"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{
		ID:          q.ID,
		QType:       q.KindName(),
		Question:    q.Text,
		Options:     q.Options(),
		Answer:      q.Answer,
		Explanation: q.Explanation,
		Citations:   q.Citations,
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, err := ParseKind(raw.QType, raw.Options)
	if err != nil {
		return err
	}
	*q = Question{
		ID:          raw.ID,
		Kind:        kind,
		Text:        raw.Question,
		Answer:      raw.Answer,
		Explanation: raw.Explanation,
		Citations:   raw.Citations,
	}
	return nil
}

// ParseKind maps a lower-case wire name to a Kind. Options are attached
// only to multiple-choice questions.
func ParseKind(name string, options []string) (Kind, error) {
	switch name {
	case KindNameMCQ:
		return MultipleChoice{Options: slices.Clone(options)}, nil
	case KindNameTF:
		return TrueFalse{}, nil
	case KindNameOpen:
		return OpenEnded{}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", name)
	}
}

// Counts is the requested distribution of question kinds.
type Counts struct {
	MCQ  int `json:"mcq"`
	TF   int `json:"tf"`
	Open int `json:"open"`
}

// DefaultCounts is the standard quiz mix.
func DefaultCounts() Counts {
	return Counts{MCQ: 3, TF: 3, Open: 2}
}

// Total returns the number of questions requested.
func (c Counts) Total() int {
	return c.MCQ + c.TF + c.Open
}

// Validate rejects negative counts and empty requests.
func (c Counts) Validate() error {
	if c.MCQ < 0 || c.TF < 0 || c.Open < 0 {
		return fmt.Errorf("question counts must not be negative: %+v", c)
	}
	if c.Total() == 0 {
		return fmt.Errorf("at least one question must be requested")
	}
	return nil
}

func (c Counts) String() string {
	return fmt.Sprintf("%d mcq, %d tf, %d open", c.MCQ, c.TF, c.Open)
}

// Quiz is the ordered result of one generation request. It is not
// modified after BuildQuiz returns.
type Quiz struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Requested Counts     `json:"requested"`
	Questions []Question `json:"questions"`

	// Dropped lists the records that failed validation.
	Dropped []*ValidationError `json:"-"`
}

// Produced counts the questions per kind actually present.
func (q *Quiz) Produced() Counts {
	var c Counts
	for _, question := range q.Questions {
		switch question.Kind.(type) {
		case MultipleChoice:
			c.MCQ++
		case TrueFalse:
			c.TF++
		case OpenEnded:
			c.Open++
		}
	}
	return c
}

// CountMismatch reports whether the produced distribution differs from
// the requested one. A zero Requested value never mismatches.
func (q *Quiz) CountMismatch() bool {
	if q.Requested == (Counts{}) {
		return false
	}
	return q.Produced() != q.Requested
}

// Question returns the question with the given id.
func (q *Quiz) Question(id int) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}
