package session

import (
	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/quiz"
)

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Quiz *quiz.Quiz
	Err  error
}
