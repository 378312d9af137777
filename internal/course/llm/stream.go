package llm

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

const (
	// DefaultMaxAttempts bounds how often a timed-out stream is re-sent.
	DefaultMaxAttempts = 3
	// DefaultBackoff is the initial wait before the first retry; it doubles
	// after every further timeout.
	DefaultBackoff = 2 * time.Second
)

// StreamingModel is the streaming surface of an eino chat model.
// *gemini.ChatModel satisfies it; tests substitute scripted fakes.
type StreamingModel interface {
	Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error)
}

// Sink receives the accumulated text after each fragment, as best-effort
// live feedback. A retried attempt starts the sink over from empty; delivery
// is at-least-once and not a correctness boundary.
type Sink func(accumulated string)

// StreamClient issues streaming generation requests and retries timed-out
// attempts from scratch with exponential backoff. The partial accumulator of
// a failed attempt is always discarded; non-timeout errors are returned
// immediately without retry.
type StreamClient struct {
	model       StreamingModel
	modelName   string
	maxAttempts int
	backoff     time.Duration
	sleep       func(time.Duration)
}

// NewStreamClient wraps the model with the retry policy. Non-positive
// settings fall back to the defaults.
func NewStreamClient(m StreamingModel, modelName string, maxAttempts, backoffSeconds int) *StreamClient {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	backoff := time.Duration(backoffSeconds) * time.Second
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &StreamClient{
		model:       m,
		modelName:   modelName,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		sleep:       time.Sleep,
	}
}

// Generate streams a completion for the prompt and returns the full
// accumulated text once the stream ends.
func (c *StreamClient) Generate(ctx context.Context, promptText string, sink Sink) (string, error) {
	delay := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := c.streamOnce(ctx, promptText, sink)
		if err == nil {
			return text, nil
		}
		if !isTimeout(err) {
			logx.Error().Err(err).Str("model", c.modelName).Msg("generation request failed")
			return "", errx.New(err, errx.KindTransport, "generation request failed")
		}

		lastErr = err
		logx.Warn().
			Err(err).
			Str("model", c.modelName).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("backoff", delay).
			Msg("generation timed out")

		if attempt < c.maxAttempts {
			c.sleep(delay)
			delay *= 2
		}
	}

	return "", errx.New(lastErr, errx.KindTimeout, "generation timed out after retries")
}

// streamOnce performs a single attempt. Its accumulator is local, so a
// failure drops every fragment received so far.
func (c *StreamClient) streamOnce(ctx context.Context, promptText string, sink Sink) (string, error) {
	sr, err := c.model.Stream(ctx, []*schema.Message{schema.UserMessage(promptText)})
	if err != nil {
		return "", err
	}
	defer sr.Close()

	var acc strings.Builder
	for {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if msg == nil {
			continue
		}
		if msg.Content != "" {
			acc.WriteString(msg.Content)
			if sink != nil {
				sink(acc.String())
			}
		}
		logUsage(c.modelName, msg)
	}
	return acc.String(), nil
}

// isTimeout reports whether the transport failed with a timeout condition,
// the only failure class the streaming client retries.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
