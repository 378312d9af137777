package prompt

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/quiz_prompt.txt
var quizTemplate string

// QuizSystem steers the quiz model towards pure JSON output.
const QuizSystem = "Generate quizzes consisting of multiple-choice questions (MCQs) in valid JSON format only."

// quizContextLimit caps how much course text is sent with a quiz request.
const quizContextLimit = 1000

// Quiz renders the single-shot quiz instruction. Only the first 1000
// characters of the course content are included in the request.
func Quiz(ctx context.Context, courseContent, difficulty string) (string, error) {
	runes := []rune(courseContent)
	if len(runes) > quizContextLimit {
		runes = runes[:quizContextLimit]
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(quizTemplate),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Difficulty": difficulty,
		"Context":    string(runes),
	})
	if err != nil {
		return "", fmt.Errorf("quiz prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("quiz prompt render: empty result")
	}
	return msgs[0].Content, nil
}
