package model

// Skill levels accepted on a learner profile.
const (
	SkillBeginner     = "Beginner"
	SkillIntermediate = "Intermediate"
	SkillAdvanced     = "Advanced"
)

// Learning styles accepted on a learner profile.
const (
	StyleVisual    = "Visual"
	StyleTextual   = "Textual"
	StylePractical = "Practical"
)

// Paces accepted on a learner profile.
const (
	PaceSlow   = "Slow"
	PaceNormal = "Normal"
	PaceFast   = "Fast"
)

// Defaults substituted for absent profile fields when rendering prompts.
const (
	DefaultName             = "Learner"
	DefaultSkillLevel       = SkillBeginner
	DefaultPriorKnowledge   = "None"
	DefaultLearningStyle    = StyleTextual
	DefaultPace             = PaceNormal
	DefaultLanguage         = "English"
	DefaultTimeAvailability = "Flexible"
)

// LearnerProfile describes how course content should be tailored. It is
// immutable once submitted; the prompt builder only reads it.
type LearnerProfile struct {
	Name             string
	SkillLevel       string
	PriorKnowledge   string
	LearningStyle    string
	Pace             string
	Language         string
	TimeAvailability string
}

// WithDefaults returns a copy with every empty field replaced by its
// documented default, so two empty profiles always render identically.
func (p LearnerProfile) WithDefaults() LearnerProfile {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.SkillLevel == "" {
		p.SkillLevel = DefaultSkillLevel
	}
	if p.PriorKnowledge == "" {
		p.PriorKnowledge = DefaultPriorKnowledge
	}
	if p.LearningStyle == "" {
		p.LearningStyle = DefaultLearningStyle
	}
	if p.Pace == "" {
		p.Pace = DefaultPace
	}
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if p.TimeAvailability == "" {
		p.TimeAvailability = DefaultTimeAvailability
	}
	return p
}
