package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

// MultiChoice is a selector for lettered options and True/False
// questions. Options prefixed "A. ", "B) " and so on answer with their
// letter; any other option answers with its own text.
type MultiChoice struct {
	Options      []string
	Labels       []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector for options. answer is the reference
// answer used to highlight the correct option after submission; when no
// option matches it, CorrectIndex is -1.
func NewMultiChoice(options []string, answer string) MultiChoice {
	labels := make([]string, len(options))
	correct := -1
	for i, opt := range options {
		labels[i] = OptionLabel(opt)
		if correct < 0 && sameChoice(labels[i], answer) {
			correct = i
		}
	}
	return MultiChoice{
		Options:      options,
		Labels:       labels,
		CorrectIndex: correct,
		ChosenIndex:  -1,
	}
}

// OptionLabel returns the answer letter of a lettered option, or the
// trimmed option text otherwise.
func OptionLabel(opt string) string {
	opt = strings.TrimSpace(opt)
	if len(opt) >= 2 && isLetter(opt[0]) && strings.ContainsRune(".):", rune(opt[1])) {
		return strings.ToUpper(opt[:1])
	}
	return opt
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func sameChoice(a, b string) bool {
	norm := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ".", "")
	}
	return norm(a) == norm(b)
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Number keys pick an
// option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.Submitted = true
			m.ChosenIndex = m.Selected
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
		}
	}

	return m, nil
}

// View renders the options. After submission the correct option is shown
// in green and a wrong choice in red.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := prefix + opt

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Answer returns the label of the chosen option, or "" before submission.
func (m MultiChoice) Answer() string {
	if !m.Submitted || m.ChosenIndex < 0 {
		return ""
	}
	return m.Labels[m.ChosenIndex]
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
