package model

import (
	"time"

	"gorm.io/gorm"
)

// MeaningSource tags where a meaning came from.
const (
	MeaningSourceManual     = "manual"
	MeaningSourceAI         = "ai"
	MeaningSourceDictionary = "dictionary"
)

type Vocabulary struct {
	ID     uint    `gorm:"primarykey" json:"id"`
	UserID uint    `json:"user_id" gorm:"not null;index"`
	Word   string  `json:"word" gorm:"not null;index"`
	AudioURL *string `json:"audio_url,omitempty"`

	Meanings []Meaning `json:"meanings,omitempty" gorm:"foreignKey:VocabularyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	// Spaced-repetition schedule. Mutated only through srs.Advance results.
	EasinessFactor float64    `json:"easiness_factor" gorm:"not null;default:2.5"`
	IntervalDays   int        `json:"interval_days" gorm:"not null;default:0"`
	Repetitions    int        `json:"repetitions" gorm:"not null;default:0"`
	NextReviewDate time.Time  `json:"next_review_date" gorm:"not null;index"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Meaning struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	VocabularyID    uint        `json:"vocabulary_id" gorm:"not null;index"`
	Definition      string      `json:"definition" gorm:"type:text;not null"`
	ExampleSentence *string     `json:"example_sentence,omitempty" gorm:"type:text"`
	Synonyms        StringArray `json:"synonyms,omitempty" gorm:"type:text"`
	Source          string      `json:"source" gorm:"not null;default:'manual'"` // "manual", "ai", "dictionary"

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FirstDefinition returns the primary definition, or "" for an item with no
// meanings yet.
func (v *Vocabulary) FirstDefinition() string {
	if len(v.Meanings) == 0 {
		return ""
	}
	return v.Meanings[0].Definition
}

// ExampleSentence returns the first meaning's example sentence, if any.
func (v *Vocabulary) ExampleSentence() *string {
	for _, m := range v.Meanings {
		if m.ExampleSentence != nil && *m.ExampleSentence != "" {
			return m.ExampleSentence
		}
	}
	return nil
}

// Synonyms returns the first meaning's synonym list, if any.
func (v *Vocabulary) Synonyms() []string {
	for _, m := range v.Meanings {
		if len(m.Synonyms) > 0 {
			return m.Synonyms
		}
	}
	return nil
}
