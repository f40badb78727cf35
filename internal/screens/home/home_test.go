package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/history"
	sessionscreen "github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/session"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screens/topic"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/store"
)

type nopSource struct{}

func (nopSource) GenerateRandom(context.Context, quiz.Counts) (*quiz.Quiz, error) {
	return &quiz.Quiz{}, nil
}

func (nopSource) GenerateTopic(context.Context, string, quiz.Counts) (*quiz.Quiz, error) {
	return &quiz.Quiz{}, nil
}

type fakeAttempts struct{ records []store.AttemptRecord }

func (f *fakeAttempts) Save(context.Context, store.AttemptData) (string, error) { return "", nil }
func (f *fakeAttempts) List(context.Context, store.QueryOpts) ([]store.AttemptRecord, error) {
	return f.records, nil
}
func (f *fakeAttempts) Get(context.Context, string) (*store.AttemptRecord, error) { return nil, nil }

type fakeChunks struct{ count int }

func (f *fakeChunks) ReplaceSource(context.Context, string, []store.Chunk) error { return nil }
func (f *fakeChunks) Search(context.Context, string, int) ([]store.Chunk, error) { return nil, nil }
func (f *fakeChunks) Sources(context.Context) ([]store.SourceSummary, error)     { return nil, nil }
func (f *fakeChunks) Count(context.Context) (int, error)                         { return f.count, nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func pushed(t *testing.T, cmd tea.Cmd) router.PushScreenMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg
}

func testDeps() Deps {
	return Deps{
		Source:   nopSource{},
		Counts:   quiz.DefaultCounts(),
		Attempts: &fakeAttempts{records: []store.AttemptRecord{{AttemptData: store.AttemptData{Percentage: 62.5}}}},
		Chunks:   &fakeChunks{count: 42},
	}
}

func TestHomeScreen_MenuActions(t *testing.T) {
	h := New(testDeps())

	_, cmd := h.Update(keyPress('1'))
	if _, ok := pushed(t, cmd).Screen.(*sessionscreen.SessionScreen); !ok {
		t.Error("Random Quiz should open the quiz screen")
	}

	_, cmd = h.Update(keyPress('2'))
	if _, ok := pushed(t, cmd).Screen.(*topic.TopicScreen); !ok {
		t.Error("Topic Quiz should open the topic screen")
	}

	_, cmd = h.Update(keyPress('3'))
	if _, ok := pushed(t, cmd).Screen.(*history.HistoryScreen); !ok {
		t.Error("History should open the history screen")
	}
}

func TestHomeScreen_HistoryDisabledWithoutStore(t *testing.T) {
	deps := testDeps()
	deps.Attempts = nil
	h := New(deps)
	if _, cmd := h.Update(keyPress('3')); cmd != nil {
		t.Error("History should be disabled without an attempt store")
	}
}

func TestHomeScreen_TopicStartsQuiz(t *testing.T) {
	h := New(testDeps())
	next := h.startTopic("firewalls")
	if next.Title() != "Topic Quiz: firewalls" {
		t.Errorf("Title = %q", next.Title())
	}
}

func TestHomeScreen_Stats(t *testing.T) {
	h := New(testDeps())
	view := h.View(100, 30)
	if !strings.Contains(view, "8 questions: 3 multiple-choice, 3 true/false, 2 open-ended") {
		t.Errorf("expected question mix, got:\n%s", view)
	}
	if strings.Contains(view, "Quizzes taken") {
		t.Error("stats should not render before loading")
	}

	h.Update(h.Init()())
	view = h.View(100, 30)
	for _, want := range []string{"62.5%", "42"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "No course material indexed") {
		t.Error("ingest hint should only show for an empty index")
	}
}

func TestHomeScreen_EmptyIndexHint(t *testing.T) {
	deps := testDeps()
	deps.Chunks = &fakeChunks{}
	h := New(deps)
	h.Update(h.Init()())
	if !strings.Contains(h.View(100, 30), "No course material indexed yet") {
		t.Error("expected ingest hint")
	}
}
