package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// CourseRequest carries everything a single generation run consumes. The
// document text is transient; it lives only for the duration of the run.
type CourseRequest struct {
	Topic    string
	Profile  LearnerProfile
	Document string
}

// Fingerprint identifies the request content. Two requests with the same
// topic, profile and document hash identically, so a session never
// regenerates unchanged inputs and never suppresses changed ones.
func (r CourseRequest) Fingerprint() string {
	p := r.Profile.WithDefaults()
	h := sha256.New()
	for _, field := range []string{
		r.Topic,
		p.Name,
		p.SkillLevel,
		p.PriorKnowledge,
		p.LearningStyle,
		p.Pace,
		p.Language,
		p.TimeAvailability,
		r.Document,
	} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GeneratedCourse is the finished output of one pipeline run.
type GeneratedCourse struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
	// Path of the disk artifact; empty when the best-effort write failed.
	Path string `json:"path"`
}

// QuizQuestion is a single multiple-choice question. Options holds exactly
// four entries and Answer repeats one of them verbatim; the model is asked
// for that shape but it is not enforced at decode time.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// SessionRepository memoizes finished courses per session. Lookup returns
// (nil, nil) on a miss.
type SessionRepository interface {
	// Lookup retrieves the course cached for the session and fingerprint.
	Lookup(ctx context.Context, sessionID, fingerprint string) (*GeneratedCourse, error)

	// Store caches a finished course for the session and fingerprint.
	Store(ctx context.Context, sessionID, fingerprint string, course *GeneratedCourse) error

	// Clear removes every cached course for the session.
	Clear(ctx context.Context, sessionID string) error
}
