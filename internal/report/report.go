// Package report renders graded quizzes to HTML and JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
)

// DefaultDir is where reports are written when no directory is configured.
const DefaultDir = "reports"

const fileStampLayout = "20060102_150405"

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": func(score, max float64) string { return fmt.Sprintf("%.1f/%.1f", score, max) },
}).Parse(`<html><head><meta charset="utf-8">
<title>Network Security Quiz Report</title>
<style>body{font-family:sans-serif;margin:20px;} h1{color:#333;} table{border-collapse:collapse;width:100%;} th,td{border:1px solid #ccc;padding:8px;vertical-align:top;} th{background:#f0f0f0;} .correct{color:green;} .incorrect{color:red;}</style>
</head><body>
<h1>Network Security Quiz Report</h1>
{{- if .Topic}}
<p><b>Topic:</b> {{.Topic}}</p>
{{- end}}
<p><b>Score:</b> {{printf "%.2f" .Result.Total}}/{{printf "%.2f" .Result.Max}} ({{printf "%.1f" .Result.Percentage}}%)</p>
<table>
<tr><th>#</th><th>Question</th><th>Your answer</th><th>Score</th><th>Correct answer</th><th>Explanation</th><th>Local sources</th></tr>
{{- range .Result.Items}}
<tr>
<td>{{.Question.ID}}</td>
<td>{{.Question.Text}}</td>
<td>{{.Submitted}}</td>
<td class="{{if ge .Score 1.0}}correct{{else}}incorrect{{end}}">{{score .Score .MaxScore}}</td>
<td>{{.Question.Answer}}</td>
<td>{{.Question.Explanation}}</td>
<td>{{range $i, $c := .Question.Citations}}{{if $i}}<br>{{end}}{{$c}}{{end}}</td>
</tr>
{{- end}}
</table>
</body></html>
`))

type htmlData struct {
	Topic  string
	Result grading.Result
}

// RenderHTML writes the HTML report for a graded quiz. All question and
// answer text is escaped.
func RenderHTML(w io.Writer, q *quiz.Quiz, res grading.Result) error {
	return htmlTemplate.Execute(w, htmlData{Topic: q.Topic, Result: res})
}

// Export is the JSON form of a quiz and, once graded, its result.
type Export struct {
	Quiz   *quiz.Quiz      `json:"quiz"`
	Result *grading.Result `json:"result,omitempty"`
}

// WriteJSON writes an indented JSON export.
func WriteJSON(w io.Writer, e Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// ReadExport decodes an export. A bare quiz object is accepted too.
func ReadExport(r io.Reader) (*Export, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if e.Quiz == nil {
		var q quiz.Quiz
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, fmt.Errorf("decode quiz: %w", err)
		}
		e.Quiz = &q
	}
	if len(e.Quiz.Questions) == 0 {
		return nil, quiz.ErrEmptyQuiz
	}
	return &e, nil
}

// Paths lists the files produced by a Writer.
type Paths struct {
	HTML string
	JSON string
}

// Writer saves reports into a directory using timestamped file names.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir, now: time.Now}
}

// Write saves quiz_report_<stamp>.html and quiz_report_<stamp>.json.
func (w *Writer) Write(q *quiz.Quiz, res grading.Result) (Paths, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create report dir: %w", err)
	}

	base := filepath.Join(w.dir, "quiz_report_"+w.now().Format(fileStampLayout))
	paths := Paths{HTML: base + ".html", JSON: base + ".json"}

	if err := writeFile(paths.HTML, func(f io.Writer) error { return RenderHTML(f, q, res) }); err != nil {
		return Paths{}, err
	}
	if err := writeFile(paths.JSON, func(f io.Writer) error { return WriteJSON(f, Export{Quiz: q, Result: &res}) }); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
