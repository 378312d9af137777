package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/coursegen-poc/server/internal/course/chunker"
	"github.com/coursegen-poc/server/internal/course/llm"
	"github.com/coursegen-poc/server/internal/course/model"
	"github.com/coursegen-poc/server/internal/course/pipeline"
	"github.com/coursegen-poc/server/internal/course/repo"
	"github.com/coursegen-poc/server/internal/core"
	"github.com/coursegen-poc/server/internal/embedding"
	"github.com/coursegen-poc/server/internal/store"
	logx "github.com/coursegen-poc/server/pkg/logger"
	pkgredis "github.com/coursegen-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the course generation
// example, sourced from environment variables (loaded from .env for local
// runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis  pkgredis.Config
	DBPath string `envconfig:"DB_PATH" default:"data/coursegen.db"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Generation configs
	Course     model.CourseModelConfig
	Quiz       model.QuizModelConfig
	Generation model.GenerationConfig
	Session    model.SessionConfig
}

const sampleDocument = `Leave Policy. All full-time employees accrue 1.5 days of annual leave per
completed month of service, capped at 18 days per calendar year. Unused leave
carries over up to a maximum of 5 days and lapses at the end of March. Sick
leave requires a medical certificate from the third consecutive day. Leave
requests must be submitted through the HR portal at least 5 working days in
advance, except for emergencies, and are approved by the direct manager.
Public holidays follow the official national calendar. Maternity leave is 26
weeks of paid leave; paternity leave is 10 working days. During probation,
leave accrues but cannot be taken without manager approval.`

func main() {
	fmt.Println("Testing course generation pipeline...")
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

	ttl, err := time.ParseDuration(envCfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
	}

	// Memoize in Redis when configured, in memory otherwise.
	var sessions model.SessionRepository
	if envCfg.Redis.Enabled() {
		rdb, err := envCfg.Redis.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()
		fmt.Println("Connected to Redis successfully")
		sessions = repo.NewRedisSessionRepository(rdb, ttl)
	} else {
		fmt.Println("REDIS_URL not set; using in-memory session cache")
		sessions = repo.NewMemorySessionRepository()
	}

	models, err := llm.NewModels(ctx, llm.Config{
		APIKey:  envCfg.APIKey,
		BaseURL: envCfg.BaseURL,
		Course:  envCfg.Course,
		Quiz:    envCfg.Quiz,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	client := llm.NewStreamClient(
		models.Course,
		models.CourseModelName,
		envCfg.Generation.Retry.MaxAttempts,
		envCfg.Generation.Retry.BackoffSeconds,
	)

	pipe, err := pipeline.New(pipeline.Config{
		Client:    client,
		Sessions:  sessions,
		ChunkSize: envCfg.Generation.ChunkSize,
	})
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	req := model.CourseRequest{
		Topic: "Leave Policy",
		Profile: model.LearnerProfile{
			Name:             "Prachi",
			SkillLevel:       "Intermediate",
			PriorKnowledge:   "Familiar with basic HR policies",
			LearningStyle:    "Textual",
			Pace:             "Normal",
			Language:         "English",
			TimeAvailability: "2 hours/day",
		},
		Document: sampleDocument,
	}

	sessionID := uuid.NewString()
	fmt.Printf("Session: %s\nGenerating course for %q...\n\n", sessionID, req.Topic)

	// The sink receives the accumulated text so far; print only the new
	// tail. A shrink means a retry restarted the stream.
	printed := 0
	sink := func(acc string) {
		if len(acc) < printed {
			fmt.Println("\n(stream restarted)")
			printed = 0
		}
		fmt.Print(acc[printed:])
		printed = len(acc)
	}

	course, err := pipe.GenerateCourse(ctx, sessionID, req, sink)
	if err != nil {
		log.Fatalf("Course generation failed: %v", err)
	}
	fmt.Printf("\n\nCourse generated: %d characters, saved to %q\n", len(course.Content), course.Path)

	// Second run with identical inputs must come from the session cache.
	cached, err := pipe.GenerateCourse(ctx, sessionID, req, nil)
	if err != nil {
		log.Fatalf("Cached lookup failed: %v", err)
	}
	fmt.Printf("Repeat request memoized: %v\n", cached.Content == course.Content)

	// Persist profile and course.
	db, err := store.Open(envCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	learner, err := db.CreateLearnerProfile(req.Profile)
	if err != nil {
		log.Fatalf("Failed to save learner profile: %v", err)
	}
	saved, err := db.CreateCourse(course.Topic, course.Content)
	if err != nil {
		log.Fatalf("Failed to save course: %v", err)
	}
	fmt.Printf("Persisted learner #%d and course #%d\n", learner.ID, saved.ID)

	// Index the source chunks for similarity lookups over the document.
	idx, err := embedding.NewIndex(wordHashEmbedding)
	if err != nil {
		log.Fatalf("Failed to create chunk index: %v", err)
	}
	chunks := slices.Collect(chunker.Chunks(req.Document, envCfg.Generation.ChunkSize))
	if err := idx.AddTexts(ctx, chunks); err != nil {
		log.Fatalf("Failed to index chunks: %v", err)
	}
	hits, err := idx.Search(ctx, "sick leave certificate", 1)
	if err != nil {
		log.Fatalf("Chunk search failed: %v", err)
	}
	fmt.Printf("Indexed %d chunk(s); top match for 'sick leave certificate' is %d characters\n", len(chunks), len(strings.Join(hits, "")))

	fmt.Println("Course generation example completed")
}

// wordHashEmbedding hashes words into a fixed-size bag-of-words vector. It
// stands in for a remote embedding model in this offline example.
func wordHashEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 64)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%64]++
	}
	// never return the zero vector
	vec[0] += 0.001
	return vec, nil
}
