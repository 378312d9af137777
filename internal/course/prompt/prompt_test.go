package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursegen-poc/server/internal/course/model"
)

func TestCourseDeterministic(t *testing.T) {
	ctx := context.Background()
	profile := model.LearnerProfile{
		Name:       "Alice",
		SkillLevel: model.SkillIntermediate,
	}

	a, err := Course(ctx, "Leave Policy", "chunk text", profile)
	require.NoError(t, err)
	b, err := Course(ctx, "Leave Policy", "chunk text", profile)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCourseEmbedsTopicAndChunk(t *testing.T) {
	out, err := Course(context.Background(), "Leave Policy", "annual leave accrues monthly", model.LearnerProfile{})
	require.NoError(t, err)

	assert.Contains(t, out, "Leave Policy")
	assert.Contains(t, out, "annual leave accrues monthly")
	assert.Contains(t, out, "2 to 3 Main Modules")
	assert.Contains(t, out, "4-6 sentences")
	assert.Contains(t, out, "1 to 2 Subtopics")
	assert.Contains(t, out, "2-3 clear, actionable points")
}

func TestCourseEmptyProfileUsesDefaults(t *testing.T) {
	out, err := Course(context.Background(), "Leave Policy", "", model.LearnerProfile{})
	require.NoError(t, err)

	for _, literal := range []string{
		"Learner", "Beginner", "None", "Textual", "Normal", "English", "Flexible",
	} {
		assert.Contains(t, out, literal)
	}
}

func TestCourseKeepsProvidedFields(t *testing.T) {
	profile := model.LearnerProfile{
		Name:             "Prachi",
		SkillLevel:       model.SkillAdvanced,
		PriorKnowledge:   "Familiar with basic HR policies",
		LearningStyle:    model.StylePractical,
		Pace:             model.PaceFast,
		Language:         "Hindi",
		TimeAvailability: "2 hours/day",
	}

	out, err := Course(context.Background(), "Leave Policy", "", profile)
	require.NoError(t, err)

	assert.Contains(t, out, "Prachi")
	assert.Contains(t, out, "Advanced")
	assert.Contains(t, out, "2 hours/day")
	assert.NotContains(t, out, "Flexible")
}

func TestQuizTruncatesCourseContent(t *testing.T) {
	content := strings.Repeat("a", 1000) + strings.Repeat("b", 500)

	out, err := Quiz(context.Background(), content, "Easy")
	require.NoError(t, err)

	assert.Contains(t, out, strings.Repeat("a", 1000))
	assert.NotContains(t, out, "b")
	assert.Contains(t, out, "Difficulty level: Easy")
}

func TestQuizShortContentKeptWhole(t *testing.T) {
	out, err := Quiz(context.Background(), "short course", "Difficult")
	require.NoError(t, err)

	assert.Contains(t, out, "short course")
	assert.Contains(t, out, "exactly 4 options")
}
