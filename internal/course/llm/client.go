// Package llm owns the remote Gemini models and the retry policies wrapped
// around them: a streaming client for course generation and a single-shot
// client for quiz generation.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/coursegen-poc/server/internal/course/model"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

// Config holds the configuration for chat model creation.
type Config struct {
	APIKey  string
	BaseURL string
	Course  model.CourseModelConfig
	Quiz    model.QuizModelConfig
}

// Models holds the course and quiz chat models, built once from injected
// configuration and passed explicitly to the pipeline components.
type Models struct {
	Course          *gemini.ChatModel
	Quiz            *gemini.ChatModel
	CourseModelName string
	QuizModelName   string
}

// NewModels creates one Gemini client and both chat models on top of it.
func NewModels(ctx context.Context, config Config) (*Models, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	courseModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Course.Model,
		Temperature: &config.Course.Temperature,
		MaxTokens:   &config.Course.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating course model")
		return nil, fmt.Errorf("error creating course model: %w", err)
	}

	quizModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Quiz.Model,
		Temperature: &config.Quiz.Temperature,
		MaxTokens:   &config.Quiz.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating quiz model")
		return nil, fmt.Errorf("error creating quiz model: %w", err)
	}

	return &Models{
		Course:          courseModel,
		Quiz:            quizModel,
		CourseModelName: config.Course.Model,
		QuizModelName:   config.Quiz.Model,
	}, nil
}
