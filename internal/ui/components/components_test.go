package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg struct{ n int }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		opt  string
		want string
	}{
		{"A. Confidentiality", "A"},
		{"b) Integrity", "B"},
		{"C: Availability", "C"},
		{"  D. padded", "D"},
		{"True", "True"},
		{"False", "False"},
		{"AES", "AES"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.opt, func(t *testing.T) {
			if got := OptionLabel(tt.opt); got != tt.want {
				t.Errorf("OptionLabel(%q) = %q, want %q", tt.opt, got, tt.want)
			}
		})
	}
}

func TestMultiChoice_CorrectIndex(t *testing.T) {
	mc := NewMultiChoice([]string{"A. HTTP", "B. TLS", "C. FTP"}, "b.")
	if mc.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", mc.CorrectIndex)
	}

	tf := NewMultiChoice([]string{"True", "False"}, "false")
	if tf.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", tf.CorrectIndex)
	}

	none := NewMultiChoice([]string{"A. x", "B. y"}, "Z")
	if none.CorrectIndex != -1 {
		t.Errorf("CorrectIndex = %d, want -1", none.CorrectIndex)
	}
}

func TestMultiChoice_Navigation(t *testing.T) {
	mc := NewMultiChoice([]string{"A. one", "B. two", "C. three"}, "C")

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Selected != 2 {
		t.Fatalf("Selected = %d, want 2 (clamped)", mc.Selected)
	}
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if mc.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", mc.Selected)
	}
	if mc.Answer() != "" {
		t.Errorf("Answer before submit = %q, want empty", mc.Answer())
	}

	mc, _ = mc.Update(keyPress('3'))
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !mc.Submitted {
		t.Fatal("expected submitted")
	}
	if mc.Answer() != "C" {
		t.Errorf("Answer = %q, want C", mc.Answer())
	}
	if !mc.IsCorrect() {
		t.Error("expected correct")
	}

	// Input is frozen after submission.
	mc, _ = mc.Update(keyPress('1'))
	if mc.ChosenIndex != 2 {
		t.Errorf("ChosenIndex changed after submit: %d", mc.ChosenIndex)
	}
}

func TestMultiChoice_View(t *testing.T) {
	mc := NewMultiChoice([]string{"True", "False"}, "True")
	view := mc.View()
	if !strings.Contains(view, "▸ True") {
		t.Errorf("expected cursor on first option, got:\n%s", view)
	}
	if !strings.Contains(view, "False") {
		t.Errorf("expected second option, got:\n%s", view)
	}
}

func TestMenu_NumberShortcut(t *testing.T) {
	var got []int
	item := func(n int) MenuItem {
		return MenuItem{
			Label: "item",
			Action: func() tea.Cmd {
				got = append(got, n)
				return func() tea.Msg { return pickedMsg{n} }
			},
		}
	}
	m := NewMenu([]MenuItem{item(1), item(2), {Label: "off", Disabled: true}})

	m, cmd := m.Update(keyPress('2'))
	if cmd == nil {
		t.Fatal("expected command from number shortcut")
	}
	if msg := cmd(); msg != (pickedMsg{2}) {
		t.Errorf("msg = %v, want pickedMsg{2}", msg)
	}
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}

	if _, cmd := m.Update(keyPress('3')); cmd != nil {
		t.Error("disabled item should not activate")
	}
	if _, cmd := m.Update(keyPress('9')); cmd != nil {
		t.Error("out of range number should be ignored")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b"}, {Label: "c", Disabled: true}, {Label: "d"}})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if !strings.Contains(m.View(), "▸ 2. b") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
}

func TestTextInput_Submit(t *testing.T) {
	ti := NewTextInput("answer", 0)
	for _, r := range "  tls " {
		ti, _ = ti.Update(keyPress(r))
	}
	if ti.Value() != "tls" {
		t.Errorf("Value = %q, want %q", ti.Value(), "tls")
	}

	ti.Submit(true)
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "tls" {
		t.Errorf("Value after submit = %q, want unchanged", ti.Value())
	}
	if !ti.Submitted() {
		t.Error("expected submitted")
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		view := NewProgressBar("", pct, false, 10).View()
		if n := strings.Count(view, "█") + strings.Count(view, "░"); n != 10 {
			t.Errorf("percent %v: bar cells = %d, want 10", pct, n)
		}
	}
}
