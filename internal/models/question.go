package models

import "time"

type Category string

const (
	CategoryOOP            Category = "OOP"
	CategoryWebDev         Category = "WebDev"
	CategoryLanguageBasics Category = "LanguageBasics"
	CategoryDataStructures Category = "DataStructures"
	CategoryHumanResources Category = "HumanResources"
	CategoryUncategorized  Category = "Uncategorized"
)

// Categories lists every valid question category.
var Categories = []Category{
	CategoryOOP,
	CategoryWebDev,
	CategoryLanguageBasics,
	CategoryDataStructures,
	CategoryHumanResources,
	CategoryUncategorized,
}

// ParseCategory maps a raw string to a known category, falling back to
// Uncategorized for unknown or legacy values.
func ParseCategory(raw string) Category {
	for _, c := range Categories {
		if string(c) == raw {
			return c
		}
	}
	return CategoryUncategorized
}

const (
	MinQuestionPoints = 1
	MaxQuestionPoints = 10
	MinOptions        = 2
)

// Question is an immutable multiple-choice question. Documents are never
// mutated after creation.
type Question struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	Text               string    `bson:"text" json:"text"`
	Options            []string  `bson:"options" json:"options"`
	CorrectOptionIndex int       `bson:"correctOptionIndex" json:"correctOptionIndex"`
	Points             int       `bson:"points" json:"points"`
	Category           Category  `bson:"category" json:"category"`
	CreatedBy          string    `bson:"createdBy" json:"createdBy"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}

// Validate checks the structural invariants of a question.
func (q *Question) Validate() error {
	if len(q.Options) < MinOptions {
		return ErrTooFewOptions
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return ErrCorrectIndexOutOfRange
	}
	if q.Points < MinQuestionPoints || q.Points > MaxQuestionPoints {
		return ErrPointsOutOfRange
	}
	return nil
}
