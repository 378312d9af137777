// Package quiz turns finished course content into a multiple-choice quiz
// through a single-shot model call.
package quiz

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/coursegen-poc/server/internal/course/model"
	"github.com/coursegen-poc/server/internal/course/prompt"
	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

// Completer produces one complete response for a system/user message pair.
// *llm.QuizClient satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Requester asks the model for a five-question quiz over course content.
// It returns the raw response text; decoding is the caller's job so a
// malformed response can still be shown for inspection.
type Requester struct {
	client Completer
}

func NewRequester(client Completer) *Requester {
	return &Requester{client: client}
}

// Generate requests a quiz for the course content at the given difficulty.
// Only the first 1000 characters of the content reach the model.
func (r *Requester) Generate(ctx context.Context, courseContent, difficulty string) (string, error) {
	user, err := prompt.Quiz(ctx, courseContent, difficulty)
	if err != nil {
		return "", err
	}

	raw, err := r.client.Complete(ctx, prompt.QuizSystem, user)
	if err != nil {
		return "", err
	}

	logx.Debug().Int("bytes", len(raw)).Str("difficulty", difficulty).Msg("quiz response received")
	return raw, nil
}

// ParseQuestions decodes a raw quiz response into questions. Models often
// wrap JSON in markdown fences, so those are stripped first. A response
// that still fails to decode yields KindMalformed; the caller keeps the raw
// text for display instead of treating this as fatal.
func ParseQuestions(raw string) ([]model.QuizQuestion, error) {
	cleaned := stripFences(raw)

	var questions []model.QuizQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, errx.New(err, errx.KindMalformed, "quiz response is not valid JSON")
	}
	return questions, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		// drop the language tag line (e.g. ```json)
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
