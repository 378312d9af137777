// Package pipeline drives the chunk → prompt → generate loop that turns a
// source document into finished course text.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursegen-poc/server/internal/artifacts"
	"github.com/coursegen-poc/server/internal/course/chunker"
	"github.com/coursegen-poc/server/internal/course/llm"
	"github.com/coursegen-poc/server/internal/course/model"
	"github.com/coursegen-poc/server/internal/course/prompt"
	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

// sectionMarker delimits per-chunk outputs, recording 1-based chunk order.
const sectionMarker = "\n\n<!-- Section %d -->\n\n"

// Generator produces the text for one prompt. *llm.StreamClient satisfies it.
type Generator interface {
	Generate(ctx context.Context, promptText string, sink llm.Sink) (string, error)
}

// Config holds everything needed to assemble a Pipeline.
type Config struct {
	Client    Generator
	Sessions  model.SessionRepository
	Artifacts *artifacts.Writer
	ChunkSize int
}

// Pipeline orchestrates course generation. Finished courses are memoized per
// session, keyed by the request fingerprint, so unchanged inputs are never
// regenerated and changed inputs never suppressed.
type Pipeline struct {
	client    Generator
	sessions  model.SessionRepository
	artifacts *artifacts.Writer
	chunkSize int
}

// New validates the configuration and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("generation client is nil")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session repository is nil")
	}
	if cfg.Artifacts == nil {
		cfg.Artifacts = artifacts.NewWriter("")
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunker.DefaultSize
	}
	return &Pipeline{
		client:    cfg.Client,
		sessions:  cfg.Sessions,
		artifacts: cfg.Artifacts,
		chunkSize: cfg.ChunkSize,
	}, nil
}

// GenerateCourse runs the full pipeline for one request. Generation is
// all-or-nothing: if any chunk fails, nothing is written, cached or
// returned. The artifact write alone is best-effort; on failure the course
// is still returned with an empty path.
func (p *Pipeline) GenerateCourse(ctx context.Context, sessionID string, req model.CourseRequest, sink llm.Sink) (*model.GeneratedCourse, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, errx.New(nil, errx.KindInput, "topic is required")
	}

	fingerprint := req.Fingerprint()
	cached, err := p.sessions.Lookup(ctx, sessionID, fingerprint)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("session lookup failed; regenerating")
	}
	if cached != nil {
		logx.Debug().Str("session_id", sessionID).Str("topic", req.Topic).Msg("returning memoized course")
		return cached, nil
	}

	var buf strings.Builder
	section := 0
	for chunk := range chunker.Chunks(req.Document, p.chunkSize) {
		section++
		if err := p.appendSection(ctx, &buf, req, chunk, section, sink); err != nil {
			return nil, err
		}
	}
	// An empty document still triggers exactly one generation call.
	if section == 0 {
		if err := p.appendSection(ctx, &buf, req, "", 1, sink); err != nil {
			return nil, err
		}
	}

	course := &model.GeneratedCourse{
		Topic:   req.Topic,
		Content: buf.String(),
	}

	path, err := p.artifacts.SaveCourse(course.Content, req.Topic)
	if err != nil {
		logx.Error().Err(err).Str("topic", req.Topic).Msg("failed to save course artifact")
	} else {
		course.Path = path
	}

	if err := p.sessions.Store(ctx, sessionID, fingerprint, course); err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to memoize course")
	}

	logx.Info().
		Str("session_id", sessionID).
		Str("topic", req.Topic).
		Int("sections", max(section, 1)).
		Str("path", course.Path).
		Msg("course generated")
	return course, nil
}

func (p *Pipeline) appendSection(ctx context.Context, buf *strings.Builder, req model.CourseRequest, chunk string, section int, sink llm.Sink) error {
	promptText, err := prompt.Course(ctx, req.Topic, chunk, req.Profile)
	if err != nil {
		return err
	}
	text, err := p.client.Generate(ctx, promptText, sink)
	if err != nil {
		return fmt.Errorf("generate section %d: %w", section, err)
	}
	fmt.Fprintf(buf, sectionMarker, section)
	buf.WriteString(text)
	return nil
}
