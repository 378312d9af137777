package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/coursegen-poc/server/internal/core/error"
)

// scriptedCompletion fails a fixed number of attempts before answering.
type scriptedCompletion struct {
	failures int
	answer   string

	calls  int
	system string
	user   string
}

func (s *scriptedCompletion) Generate(_ context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	s.calls++
	if len(input) == 2 {
		s.system = input[0].Content
		s.user = input[1].Content
	}
	if s.calls <= s.failures {
		return nil, errors.New("upstream unavailable")
	}
	return schema.AssistantMessage(s.answer, nil), nil
}

func newTestQuizClient(m CompletionModel, maxAttempts, waitSeconds int) (*QuizClient, *[]time.Duration) {
	c := NewQuizClient(m, "test-model", maxAttempts, waitSeconds)
	waits := &[]time.Duration{}
	c.sleep = func(d time.Duration) { *waits = append(*waits, d) }
	return c, waits
}

func TestQuizClientRetriesAnyErrorWithDoublingWait(t *testing.T) {
	fake := &scriptedCompletion{failures: 2, answer: "  [] \n"}
	c, waits := newTestQuizClient(fake, 5, 1)

	out, err := c.Complete(context.Background(), "system", "user")
	require.NoError(t, err)

	assert.Equal(t, "[]", out)
	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *waits)
	assert.Equal(t, "system", fake.system)
	assert.Equal(t, "user", fake.user)
}

func TestQuizClientExhaustsRetryBudget(t *testing.T) {
	fake := &scriptedCompletion{failures: 100}
	c, waits := newTestQuizClient(fake, 5, 1)

	_, err := c.Complete(context.Background(), "system", "user")
	require.Error(t, err)

	assert.True(t, errx.IsKind(err, errx.KindRetryBudget))
	assert.Equal(t, 5, fake.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}, *waits)
}
