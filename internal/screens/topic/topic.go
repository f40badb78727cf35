package topic

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/router"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/screen"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/components"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/layout"
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

const maxTopicLength = 80

// TopicScreen asks for a quiz topic and then replaces itself with the
// screen built by start.
type TopicScreen struct {
	input  components.TextInput
	start  func(topic string) screen.Screen
	errMsg string
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates a TopicScreen.
func New(start func(topic string) screen.Screen) *TopicScreen {
	return &TopicScreen{
		input: components.NewTextInput("TLS, firewalls, VPN...", maxTopicLength),
		start: start,
	}
}

func (t *TopicScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TopicScreen) Title() string {
	return "Topic Quiz"
}

func (t *TopicScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" {
			topic := t.input.Value()
			if topic == "" {
				t.errMsg = "Enter a topic to continue."
				return t, nil
			}
			next := t.start(topic)
			return t, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		t.errMsg = ""
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TopicScreen) View(width, height int) string {
	prompt := theme.Title.Width(width).Render("Enter topic (e.g. TLS, firewalls, VPN):")
	field := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Width(min(width-8, 60)).Render(t.input.View()))

	out := "\n\n" + prompt + "\n\n" + field
	if t.errMsg != "" {
		out += "\n\n" + theme.Incorrect.Width(width).Align(lipgloss.Center).Render(t.errMsg)
	}
	return out
}
