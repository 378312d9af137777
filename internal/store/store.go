// Package store persists generated courses, quizzes and learner profiles.
// The contract is insert-and-read-back only; nothing is updated or deleted.
package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/coursegen-poc/server/internal/course/model"
	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

// Course is a persisted generated course.
type Course struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	Topic   string         `gorm:"size:100" json:"topic"`
	Outline datatypes.JSON `gorm:"column:outline" json:"outline"`
	Content string         `gorm:"type:text" json:"content"`
}

func (Course) TableName() string { return "courses" }

// Quiz is a persisted quiz, tied to its course.
type Quiz struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CourseID  uint           `gorm:"index" json:"course_id"`
	Questions datatypes.JSON `gorm:"column:questions" json:"questions"`
}

func (Quiz) TableName() string { return "quizzes" }

// LearnerProfile is a persisted learner profile.
type LearnerProfile struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"size:50" json:"name"`
	SkillLevel       string `gorm:"size:20" json:"skill_level"`
	PriorKnowledge   string `gorm:"type:text" json:"prior_knowledge"`
	LearningStyle    string `gorm:"size:20" json:"learning_style"`
	Pace             string `gorm:"size:20" json:"pace"`
	Language         string `gorm:"size:20" json:"language"`
	TimeAvailability string `gorm:"size:50" json:"time_availability"`
}

func (LearnerProfile) TableName() string { return "learners" }

// Store owns the database handle.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to open database")
		return nil, errx.New(err, errx.KindStorage, "failed to open database")
	}

	if err := db.AutoMigrate(&Course{}, &Quiz{}, &LearnerProfile{}); err != nil {
		logx.Error().Err(err).Msg("auto migration failed")
		return nil, errx.New(err, errx.KindStorage, "auto migration failed")
	}

	return &Store{db: db}, nil
}

// CreateCourse inserts a course record and returns it with its assigned ID.
func (s *Store) CreateCourse(topic, content string) (*Course, error) {
	course := &Course{
		Topic:   topic,
		Outline: datatypes.JSON([]byte("{}")),
		Content: content,
	}
	if err := s.db.Create(course).Error; err != nil {
		return nil, errx.New(err, errx.KindStorage, "failed to save course")
	}
	return course, nil
}

// GetCourse reads a course back by ID.
func (s *Store) GetCourse(id uint) (*Course, error) {
	var course Course
	if err := s.db.First(&course, id).Error; err != nil {
		return nil, errx.New(err, errx.KindStorage, "failed to load course")
	}
	return &course, nil
}

// CreateQuiz inserts a quiz for the course, serializing the questions as a
// JSON blob.
func (s *Store) CreateQuiz(courseID uint, questions []model.QuizQuestion) (*Quiz, error) {
	blob, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	q := &Quiz{
		CourseID:  courseID,
		Questions: datatypes.JSON(blob),
	}
	if err := s.db.Create(q).Error; err != nil {
		return nil, errx.New(err, errx.KindStorage, "failed to save quiz")
	}
	return q, nil
}

// GetQuizByCourse reads the quiz stored for a course.
func (s *Store) GetQuizByCourse(courseID uint) (*Quiz, []model.QuizQuestion, error) {
	var q Quiz
	if err := s.db.Where("course_id = ?", courseID).First(&q).Error; err != nil {
		return nil, nil, errx.New(err, errx.KindStorage, "failed to load quiz")
	}
	var questions []model.QuizQuestion
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil, nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return &q, questions, nil
}

// CreateLearnerProfile inserts a learner profile record.
func (s *Store) CreateLearnerProfile(p model.LearnerProfile) (*LearnerProfile, error) {
	row := &LearnerProfile{
		Name:             p.Name,
		SkillLevel:       p.SkillLevel,
		PriorKnowledge:   p.PriorKnowledge,
		LearningStyle:    p.LearningStyle,
		Pace:             p.Pace,
		Language:         p.Language,
		TimeAvailability: p.TimeAvailability,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, errx.New(err, errx.KindStorage, "failed to save learner profile")
	}
	return row, nil
}

// GetLearnerProfile reads a learner profile back by ID.
func (s *Store) GetLearnerProfile(id uint) (*LearnerProfile, error) {
	var row LearnerProfile
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, errx.New(err, errx.KindStorage, "failed to load learner profile")
	}
	return &row, nil
}
