package model

// ================ Config ================
type CourseModelConfig struct {
	Model       string  `envconfig:"COURSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"COURSE_MAX_TOKENS" default:"8192"`
	Temperature float32 `envconfig:"COURSE_TEMPERATURE" default:"0.7"`
}

type QuizModelConfig struct {
	Model       string  `envconfig:"QUIZ_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"QUIZ_MAX_TOKENS" default:"2048"`
	Temperature float32 `envconfig:"QUIZ_TEMPERATURE" default:"0.2"`
}

type GenerationConfig struct {
	ChunkSize int `envconfig:"GENERATION_CHUNK_SIZE" default:"3000"`
	Retry     struct {
		MaxAttempts    int `envconfig:"GENERATION_MAX_ATTEMPTS" default:"3"`
		BackoffSeconds int `envconfig:"GENERATION_BACKOFF_SECONDS" default:"2"`
	}
}

type QuizGenerationConfig struct {
	Retry struct {
		MaxAttempts int `envconfig:"QUIZ_MAX_ATTEMPTS" default:"5"`
		WaitSeconds int `envconfig:"QUIZ_WAIT_SECONDS" default:"1"`
	}
}

type SessionConfig struct {
	// TTL bounds how long a generated course stays cached for a session.
	TTL string `envconfig:"SESSION_TTL" default:"30m"`
}
