// Package artifacts writes generated course and quiz text to disk under
// topic-derived, timestamp-qualified filenames.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const slugMaxLen = 50

var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// Writer saves artifacts below a base directory, creating the courses and
// quizzes subdirectories on demand.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter returns a Writer rooted at baseDir (default "data").
func NewWriter(baseDir string) *Writer {
	if baseDir == "" {
		baseDir = "data"
	}
	return &Writer{baseDir: baseDir, now: time.Now}
}

// Slug reduces a topic to a filesystem-safe name: anything outside
// alphanumerics, underscore and hyphen collapses to "_", truncated to 50.
func Slug(topic string) string {
	s := slugPattern.ReplaceAllString(topic, "_")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s
}

// SaveCourse writes the course text and returns the file path.
func (w *Writer) SaveCourse(courseText, topic string) (string, error) {
	name := fmt.Sprintf("%s_%s.txt", w.timestamp(), Slug(topic))
	return w.write(filepath.Join(w.baseDir, "courses"), name, courseText)
}

// SaveQuiz writes the raw quiz text and returns the file path.
func (w *Writer) SaveQuiz(quizText, topic string) (string, error) {
	name := fmt.Sprintf("%s_%s_quiz.txt", w.timestamp(), Slug(topic))
	return w.write(filepath.Join(w.baseDir, "quizzes"), name, quizText)
}

func (w *Writer) timestamp() string {
	return w.now().Format("20060102_150405")
}

func (w *Writer) write(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
