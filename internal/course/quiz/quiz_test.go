package quiz

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/coursegen-poc/server/internal/core/error"
)

type recordingCompleter struct {
	response string
	system   string
	user     string
}

func (c *recordingCompleter) Complete(_ context.Context, system, user string) (string, error) {
	c.system = system
	c.user = user
	return c.response, nil
}

const wellFormedQuiz = `[
  {"question": "Q1", "options": ["a", "b", "c", "d"], "answer": "a"},
  {"question": "Q2", "options": ["a", "b", "c", "d"], "answer": "b"},
  {"question": "Q3", "options": ["a", "b", "c", "d"], "answer": "c"},
  {"question": "Q4", "options": ["a", "b", "c", "d"], "answer": "d"},
  {"question": "Q5", "options": ["a", "b", "c", "d"], "answer": "a"}
]`

func TestGenerateTruncatesCourseContent(t *testing.T) {
	completer := &recordingCompleter{response: "[]"}
	r := NewRequester(completer)

	content := strings.Repeat("x", 1000) + strings.Repeat("y", 500)
	_, err := r.Generate(context.Background(), content, "Easy")
	require.NoError(t, err)

	assert.Contains(t, completer.user, strings.Repeat("x", 1000))
	assert.NotContains(t, completer.user, "y")
	assert.Contains(t, completer.user, "Difficulty level: Easy")
	assert.Contains(t, completer.system, "valid JSON format only")
}

func TestGenerateReturnsRawText(t *testing.T) {
	completer := &recordingCompleter{response: "not even json"}
	r := NewRequester(completer)

	raw, err := r.Generate(context.Background(), "course", "Moderate")
	require.NoError(t, err)

	assert.Equal(t, "not even json", raw)
}

func TestParseQuestionsWellFormed(t *testing.T) {
	questions, err := ParseQuestions(wellFormedQuiz)
	require.NoError(t, err)

	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.Answer)
	}
}

func TestParseQuestionsStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + wellFormedQuiz + "\n```"

	questions, err := ParseQuestions(fenced)
	require.NoError(t, err)
	assert.Len(t, questions, 5)

	bare := "```\n" + wellFormedQuiz + "\n```"
	questions, err = ParseQuestions(bare)
	require.NoError(t, err)
	assert.Len(t, questions, 5)
}

func TestParseQuestionsMalformedJSON(t *testing.T) {
	raw := `[{"question": "Q1", "options": ["a","b","c","d"], "answer": "a"` // truncated

	questions, err := ParseQuestions(raw)
	require.Error(t, err)

	assert.Nil(t, questions)
	assert.True(t, errx.IsKind(err, errx.KindMalformed))
	// distinct from a spent retry budget
	assert.False(t, errx.IsKind(err, errx.KindRetryBudget))
}

func TestParseQuestionsPlainProse(t *testing.T) {
	_, err := ParseQuestions("Sorry, I cannot generate a quiz right now.")
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindMalformed))
}
