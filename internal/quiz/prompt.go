package quiz

import (
	"fmt"
	"strings"
)

const promptContract = `For each question, output:
- id: integer starting from 1
- qtype: "mcq", "tf", or "open"
- question: the question text
- options: for mcq only, a list like ["A. ...", "B. ...", "C. ...", "D. ..."]
- answer: the correct answer ("A"/"B"/"C"/"D" for mcq, "True"/"False" for tf, or short text for open)
- explanation: a brief explanation based strictly on the materials

Return ONLY valid JSON, in either format:
1)
{
  "questions": [
    {
      "id": 1,
      "qtype": "mcq",
      "question": "...",
      "options": ["A. ...", "B. ...", "C. ...", "D. ..."],
      "answer": "B",
      "explanation": "..."
    },
    ...
  ]
}

OR

2)
[
  {
    "id": 1,
    "qtype": "mcq",
    "question": "...",
    "options": ["A. ...", "B. ...", "C. ...", "D. ..."],
    "answer": "B",
    "explanation": "..."
  },
  ...
]
`

// BuildPrompt renders the generation instruction for the given context,
// optional topic, and requested distribution. The output is deterministic.
func BuildPrompt(context, topic string, counts Counts) string {
	var b strings.Builder

	b.WriteString("You are a helpful network security tutor.\n\n")
	if topic != "" {
		fmt.Fprintf(&b, "Focus on the topic: %s.\n\n", topic)
	}

	b.WriteString("You are given the following local study materials (lecture slides, textbook excerpts, and quizzes):\n\n")
	fmt.Fprintf(&b, "\"\"\"%s\"\"\"\n\n", context)

	fmt.Fprintf(&b, "From ONLY this material, generate exactly %d quiz questions\n", counts.Total())
	b.WriteString("for a university-level network security course.\n\n")

	b.WriteString("Use exactly this distribution:\n")
	fmt.Fprintf(&b, "- %d multiple-choice (mcq)\n", counts.MCQ)
	fmt.Fprintf(&b, "- %d true/false (tf)\n", counts.TF)
	fmt.Fprintf(&b, "- %d open-ended (open)\n\n", counts.Open)

	b.WriteString(promptContract)
	return b.String()
}
