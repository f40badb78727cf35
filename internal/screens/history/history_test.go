package history

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/grading"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
)

type fakeAttempts struct {
	records []store.AttemptRecord
	err     error
	limit   int
}

func (f *fakeAttempts) Save(context.Context, store.AttemptData) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAttempts) List(_ context.Context, opts store.QueryOpts) ([]store.AttemptRecord, error) {
	f.limit = opts.Limit
	return f.records, f.err
}

func (f *fakeAttempts) Get(context.Context, string) (*store.AttemptRecord, error) {
	return nil, nil
}

func attempt(t *testing.T, topic string) store.AttemptRecord {
	t.Helper()
	q := &quiz.Quiz{Questions: []quiz.Question{
		{ID: 1, Kind: quiz.TrueFalse{}, Text: "IPsec works at layer 3.", Answer: "True"},
	}}
	res := grading.Grade(q, grading.AnswerSet{1: "True"})
	data, err := json.Marshal(res)
	require.NoError(t, err)
	return store.AttemptRecord{
		ID:        "a1",
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		AttemptData: store.AttemptData{
			Topic:         topic,
			QuestionCount: 1,
			TotalScore:    1,
			MaxScore:      1,
			Percentage:    100,
			ReportPath:    "reports/quiz_report_20260301_100000.html",
			ResultJSON:    data,
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistoryScreen_ListsAttempts(t *testing.T) {
	repo := &fakeAttempts{records: []store.AttemptRecord{attempt(t, "IPsec"), attempt(t, "")}}
	s := New(repo)
	load(t, s)

	assert.Equal(t, historyLimit, repo.limit)
	view := s.View(120, 30)
	assert.Contains(t, view, "IPsec")
	assert.Contains(t, view, "(random)")
	assert.Contains(t, view, "100.0%")
}

func TestHistoryScreen_ExpandShowsItems(t *testing.T) {
	s := New(&fakeAttempts{records: []store.AttemptRecord{attempt(t, "IPsec")}})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(120, 30)
	assert.Contains(t, view, grading.CommentCorrect)
	assert.Contains(t, view, "Report: reports/quiz_report_20260301_100000.html")
}

func TestHistoryScreen_BadResultJSON(t *testing.T) {
	rec := attempt(t, "VPN")
	rec.ResultJSON = []byte("{")
	s := New(&fakeAttempts{records: []store.AttemptRecord{rec}})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(120, 30), "Result details unavailable")
}

func TestHistoryScreen_EmptyAndError(t *testing.T) {
	s := New(&fakeAttempts{})
	assert.Contains(t, s.View(80, 20), "Loading history")
	load(t, s)
	assert.Contains(t, s.View(80, 20), "No quizzes yet")

	failing := New(&fakeAttempts{err: errors.New("database is locked")})
	load(t, failing)
	assert.True(t, strings.Contains(failing.View(80, 20), "database is locked"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
