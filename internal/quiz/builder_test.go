package quiz

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecords(t *testing.T, raw string) []Record {
	t.Helper()
	recs, err := ExtractRecords(raw)
	require.NoError(t, err)
	return recs
}

func quietBuilder() *Builder {
	return NewBuilder(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
}

func TestBuild_Kinds(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":1,"qtype":"MCQ","question":"Which cipher is symmetric?","options":["A. RSA","B. AES"],"answer":"B","explanation":"AES uses one key."},
		{"id":2,"qtype":"tf","question":"Firewalls inspect packets.","options":["ignored"],"answer":true},
		{"id":3,"qtype":"Open","question":"What does a VPN create?","answer":"an encrypted tunnel"}
	]`)

	q := quietBuilder().Build(recs, []string{"lec1.pdf_page2"})
	require.Len(t, q.Questions, 3)
	assert.Empty(t, q.Dropped)

	mc, ok := q.Questions[0].Kind.(MultipleChoice)
	require.True(t, ok)
	assert.Equal(t, []string{"A. RSA", "B. AES"}, mc.Options)
	assert.Equal(t, "AES uses one key.", q.Questions[0].Explanation)

	assert.Equal(t, TrueFalse{}, q.Questions[1].Kind)
	assert.Nil(t, q.Questions[1].Options())
	assert.Equal(t, "True", q.Questions[1].Answer)

	assert.Equal(t, OpenEnded{}, q.Questions[2].Kind)
	assert.Equal(t, "", q.Questions[2].Explanation)

	assert.Equal(t, Counts{MCQ: 1, TF: 1, Open: 1}, q.Produced())
}

func TestBuild_DropsInvalidRecords(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":1,"qtype":"tf","question":"kept","answer":"True"},
		{"id":2,"qtype":"essay","question":"unknown type","answer":"x"},
		{"id":3.5,"qtype":"tf","question":"fractional id","answer":"True"},
		{"id":"four","qtype":"tf","question":"word id","answer":"True"},
		{"id":-1,"qtype":"tf","question":"negative id","answer":"True"},
		"not an object",
		{"id":7,"qtype":"mcq","question":"string options","options":"A, B","answer":"A"},
		{"id":1,"qtype":"open","question":"duplicate id","answer":"x"},
		{"id":"9","qtype":"open","question":"string id","answer":"x"},
		{"id":10,"qtype":"open","question":{"nested":true},"answer":"x"}
	]`)

	var logs bytes.Buffer
	b := NewBuilder(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	q := b.Build(recs, nil)

	require.Len(t, q.Questions, 3)
	assert.Equal(t, "kept", q.Questions[0].Text)
	assert.Equal(t, []string{"A, B"}, q.Questions[1].Options())
	assert.Equal(t, 9, q.Questions[2].ID)

	require.Len(t, q.Dropped, len(recs)-3)
	indexes := make([]int, 0, len(q.Dropped))
	for _, d := range q.Dropped {
		indexes = append(indexes, d.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7, 9}, indexes)
	assert.Contains(t, q.Dropped[0].Reason, `unknown qtype "essay"`)
	assert.Equal(t, len(q.Dropped), strings.Count(logs.String(), "dropping question record"))
}

func TestBuild_UnknownTypeDropsExactlyThatRecord(t *testing.T) {
	recs := decodeRecords(t, `{"questions":[
		{"id":1,"qtype":"tf","question":"a","answer":"True"},
		{"id":2,"qtype":"matching","question":"b","answer":"x"},
		{"id":3,"qtype":"open","question":"c","answer":"y"}
	]}`)

	q := quietBuilder().Build(recs, nil)
	assert.Len(t, q.Questions, len(recs)-1)
	assert.Equal(t, []int{1, 3}, []int{q.Questions[0].ID, q.Questions[1].ID})
}

func TestBuild_DefaultIDsAndOrder(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":5,"qtype":"tf","question":"first","answer":"True"},
		{"qtype":"tf","question":"second","answer":"False"},
		{"qtype":"tf","question":"third","answer":"True"},
		{"id":1,"qtype":"tf","question":"fourth","answer":"True"}
	]`)

	q := quietBuilder().Build(recs, nil)
	require.Len(t, q.Questions, 4)

	var ids []int
	var texts []string
	for _, question := range q.Questions {
		ids = append(ids, question.ID)
		texts = append(texts, question.Text)
	}
	assert.Equal(t, []int{5, 2, 3, 1}, ids)
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, texts)
}

func TestBuild_NullIDDropsRecord(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":null,"qtype":"tf","question":"null id","answer":"True"},
		{"id":"abc","qtype":"tf","question":"word id","answer":"False"}
	]`)

	q := quietBuilder().Build(recs, nil)
	assert.Empty(t, q.Questions)
	require.Len(t, q.Dropped, 2)
	assert.Equal(t, 0, q.Dropped[0].Index)
	assert.Contains(t, q.Dropped[0].Reason, "id is null")
	assert.Equal(t, 1, q.Dropped[1].Index)
}

func TestBuild_QTypeIsOnlyLowerCased(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":1,"qtype":"TF","question":"upper","answer":"True"},
		{"id":2,"qtype":" open ","question":"padded","answer":"x"}
	]`)

	q := quietBuilder().Build(recs, nil)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, TrueFalse{}, q.Questions[0].Kind)
	require.Len(t, q.Dropped, 1)
	assert.Contains(t, q.Dropped[0].Reason, `unknown qtype " open "`)
}

func TestBuild_ScalarOptionsAreKept(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":1,"qtype":"mcq","question":"Which port does HTTPS use?","options":[80, 443, true, null],"answer":"443"},
		{"id":2,"qtype":"mcq","question":"Single option","options":"A. TLS","answer":"A"}
	]`)

	q := quietBuilder().Build(recs, nil)
	require.Len(t, q.Questions, 2)
	assert.Empty(t, q.Dropped)
	assert.Equal(t, []string{"80", "443", "True", ""}, q.Questions[0].Options())
	assert.Equal(t, []string{"A. TLS"}, q.Questions[1].Options())
}

func TestBuild_CitationsAreCopied(t *testing.T) {
	recs := decodeRecords(t, `[
		{"id":1,"qtype":"tf","question":"a","answer":"True"},
		{"id":2,"qtype":"tf","question":"b","answer":"False"}
	]`)
	citations := []string{"lec1.pdf_page0", "book.pdf"}

	q := quietBuilder().Build(recs, citations)
	require.Len(t, q.Questions, 2)

	q.Questions[0].Citations[0] = "changed"
	citations[1] = "also changed"
	assert.Equal(t, []string{"lec1.pdf_page0", "book.pdf"}, q.Questions[1].Citations)
}

func TestBuild_EmptyBatch(t *testing.T) {
	q := BuildQuiz(nil, []string{"x"})
	require.NotNil(t, q)
	assert.NotNil(t, q.Questions)
	assert.Empty(t, q.Questions)
	assert.NotEmpty(t, q.ID)
}

func TestBuild_Clock(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	q := NewBuilder(WithClock(func() time.Time { return at })).Build(nil, nil)
	assert.Equal(t, at, q.CreatedAt)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"null", nil, 0, true},
		{"json integer", json.Number("3"), 3, false},
		{"json integral float", json.Number("2.0"), 2, false},
		{"json fraction", json.Number("2.5"), 0, true},
		{"float", float64(6), 6, false},
		{"int", 8, 8, false},
		{"digit string", " 12 ", 12, false},
		{"word string", "one", 0, true},
		{"zero", json.Number("0"), 0, true},
		{"huge", json.Number("99999999999"), 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalarText(t *testing.T) {
	assert.Equal(t, "", scalarText(nil))
	assert.Equal(t, "True", scalarText(true))
	assert.Equal(t, "False", scalarText(false))
	assert.Equal(t, "443", scalarText(json.Number("443")))
	assert.Equal(t, "1.5", scalarText(1.5))
}

func TestQuestionJSONRoundTrip(t *testing.T) {
	in := Question{
		ID:        1,
		Kind:      MultipleChoice{Options: []string{"A. yes", "B. no"}},
		Text:      "Is SSH encrypted?",
		Answer:    "A",
		Citations: []string{"lec2.pdf_page4"},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"qtype":"mcq"`)

	var out Question
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	var bad Question
	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"qtype":"essay"}`), &bad))
}

func TestCounts(t *testing.T) {
	assert.Equal(t, 8, DefaultCounts().Total())
	assert.NoError(t, Counts{MCQ: 1}.Validate())
	assert.Error(t, Counts{}.Validate())
	assert.Error(t, Counts{MCQ: 2, TF: -1}.Validate())
	assert.Equal(t, "2 mcq, 2 tf, 1 open", Counts{MCQ: 2, TF: 2, Open: 1}.String())
}
