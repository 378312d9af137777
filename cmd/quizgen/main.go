package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/coursegen-poc/server/internal/artifacts"
	"github.com/coursegen-poc/server/internal/course/llm"
	"github.com/coursegen-poc/server/internal/course/model"
	"github.com/coursegen-poc/server/internal/course/quiz"
	"github.com/coursegen-poc/server/internal/core"
	errx "github.com/coursegen-poc/server/internal/core/error"
	"github.com/coursegen-poc/server/internal/store"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

// AppConfig defines all configurable parameters for the quiz generation
// example, sourced from environment variables (loaded from .env for local
// runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	DBPath string `envconfig:"DB_PATH" default:"data/coursegen.db"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Generation configs
	Course     model.CourseModelConfig
	Quiz       model.QuizModelConfig
	Generation model.QuizGenerationConfig
	Difficulty string `envconfig:"QUIZ_DIFFICULTY" default:"medium"`
}

const sampleCourse = `<!-- Section 1 -->

Module 1: Understanding Leave Entitlements

Full-time employees accrue 1.5 days of annual leave per completed month of
service, up to 18 days per calendar year. A maximum of 5 unused days carries
over and lapses at the end of March. Sick leave beyond two consecutive days
requires a medical certificate. Maternity leave runs 26 weeks paid and
paternity leave 10 working days.

Module 2: Requesting Leave

Requests go through the HR portal at least 5 working days ahead, except in
emergencies, and are approved by the direct manager. During probation leave
accrues but needs manager approval before it can be taken.`

func main() {
	fmt.Println("Testing quiz generation...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	models, err := llm.NewModels(ctx, llm.Config{
		APIKey:  envCfg.APIKey,
		BaseURL: envCfg.BaseURL,
		Course:  envCfg.Course,
		Quiz:    envCfg.Quiz,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	client := llm.NewQuizClient(
		models.Quiz,
		models.QuizModelName,
		envCfg.Generation.Retry.MaxAttempts,
		envCfg.Generation.Retry.WaitSeconds,
	)
	requester := quiz.NewRequester(client)

	topic := "Leave Policy"
	fmt.Printf("Requesting a %s quiz for %q...\n", envCfg.Difficulty, topic)

	raw, err := requester.Generate(ctx, sampleCourse, envCfg.Difficulty)
	if err != nil {
		log.Fatalf("Quiz generation failed: %v", err)
	}

	// Save the raw response regardless of whether it parses.
	writer := artifacts.NewWriter("")
	path, err := writer.SaveQuiz(raw, topic)
	if err != nil {
		log.Printf("Warning: could not save quiz artifact: %v", err)
	} else {
		fmt.Printf("Quiz saved to %q\n", path)
	}

	questions, err := quiz.ParseQuestions(raw)
	if err != nil {
		// A malformed response is still worth showing; anything else is fatal.
		if errx.IsKind(err, errx.KindMalformed) {
			fmt.Println("Quiz response was not valid JSON; raw output:")
			fmt.Println(raw)
			return
		}
		log.Fatalf("Failed to decode quiz: %v", err)
	}

	for i, q := range questions {
		fmt.Printf("\nQ%d: %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Printf("  %c) %s\n", 'a'+j, opt)
		}
		fmt.Printf("  Answer: %s\n", q.Answer)
	}

	// Persist the course and its quiz together.
	db, err := store.Open(envCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	course, err := db.CreateCourse(topic, sampleCourse)
	if err != nil {
		log.Fatalf("Failed to save course: %v", err)
	}
	saved, err := db.CreateQuiz(course.ID, questions)
	if err != nil {
		log.Fatalf("Failed to save quiz: %v", err)
	}
	fmt.Printf("\nPersisted quiz #%d for course #%d with %d questions\n", saved.ID, course.ID, len(questions))
}
