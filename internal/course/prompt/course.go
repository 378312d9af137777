// Package prompt renders the instruction strings sent to the generation
// model. Rendering is pure: the same inputs always produce the same string.
package prompt

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/coursegen-poc/server/internal/course/model"
)

//go:embed template/course_prompt.txt
var courseTemplate string

// Course renders the per-chunk course instruction for the given topic, chunk
// text and learner profile. Absent profile fields take their documented
// defaults, and the template constrains the model to the supplied chunk as
// its only source material.
func Course(ctx context.Context, topic, chunk string, profile model.LearnerProfile) (string, error) {
	p := profile.WithDefaults()

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(courseTemplate),
	)
	vars := map[string]any{
		"Topic":            topic,
		"Name":             p.Name,
		"SkillLevel":       p.SkillLevel,
		"PriorKnowledge":   p.PriorKnowledge,
		"LearningStyle":    p.LearningStyle,
		"Pace":             p.Pace,
		"Language":         p.Language,
		"TimeAvailability": p.TimeAvailability,
		"Context":          chunk,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("course prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("course prompt render: empty result")
	}
	return msgs[0].Content, nil
}
