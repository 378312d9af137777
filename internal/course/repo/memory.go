package repo

import (
	"context"
	"sync"

	"github.com/coursegen-poc/server/internal/course/model"
)

// MemorySessionRepository keeps cached courses in process memory. It backs
// standalone runs and tests where no Redis is configured.
type MemorySessionRepository struct {
	mu      sync.Mutex
	courses map[string]map[string]model.GeneratedCourse
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		courses: make(map[string]map[string]model.GeneratedCourse),
	}
}

func (r *MemorySessionRepository) Lookup(_ context.Context, sessionID, fingerprint string) (*model.GeneratedCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[sessionID][fingerprint]
	if !ok {
		return nil, nil
	}
	return &course, nil
}

func (r *MemorySessionRepository) Store(_ context.Context, sessionID, fingerprint string, course *model.GeneratedCourse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.courses[sessionID] == nil {
		r.courses[sessionID] = make(map[string]model.GeneratedCourse)
	}
	r.courses[sessionID][fingerprint] = *course
	return nil
}

func (r *MemorySessionRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.courses, sessionID)
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
