package llm

import (
	"context"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

const (
	// DefaultQuizMaxAttempts bounds the quiz retry loop.
	DefaultQuizMaxAttempts = 5
	// DefaultQuizWait is the initial wait between quiz attempts; it doubles
	// after every failure.
	DefaultQuizWait = 1 * time.Second
)

// CompletionModel is the non-streaming surface of an eino chat model.
type CompletionModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// QuizClient issues one-shot completions and, unlike the streaming client,
// retries on any error until its budget runs out.
type QuizClient struct {
	model       CompletionModel
	modelName   string
	maxAttempts int
	wait        time.Duration
	sleep       func(time.Duration)
}

// NewQuizClient wraps the model with the quiz retry policy. Non-positive
// settings fall back to the defaults.
func NewQuizClient(m CompletionModel, modelName string, maxAttempts, waitSeconds int) *QuizClient {
	if maxAttempts <= 0 {
		maxAttempts = DefaultQuizMaxAttempts
	}
	wait := time.Duration(waitSeconds) * time.Second
	if wait <= 0 {
		wait = DefaultQuizWait
	}
	return &QuizClient{
		model:       m,
		modelName:   modelName,
		maxAttempts: maxAttempts,
		wait:        wait,
		sleep:       time.Sleep,
	}
}

// Complete sends the system and user messages and returns the trimmed
// response body. Exhausting the retry budget yields KindRetryBudget, kept
// distinct from the caller's malformed-response handling.
func (c *QuizClient) Complete(ctx context.Context, system, user string) (string, error) {
	wait := c.wait
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		msg, err := c.model.Generate(ctx, []*schema.Message{
			schema.SystemMessage(system),
			schema.UserMessage(user),
		})
		if err == nil && msg != nil {
			logUsage(c.modelName, msg)
			return strings.TrimSpace(msg.Content), nil
		}
		if err == nil {
			err = errx.New(nil, errx.KindTransport, "empty quiz response")
		}

		lastErr = err
		logx.Warn().
			Err(err).
			Str("model", c.modelName).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("wait", wait).
			Msg("quiz request failed")

		if attempt < c.maxAttempts {
			c.sleep(wait)
			wait *= 2
		}
	}

	return "", errx.New(lastErr, errx.KindRetryBudget, "quiz request failed after retries")
}
