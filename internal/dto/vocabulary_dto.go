package dto

import "time"

// MeaningCreateDTO is used within VocabularyCreateDTO and on its own when
// appending a meaning to an existing word.
type MeaningCreateDTO struct {
	Definition      string   `json:"definition" binding:"required"`
	ExampleSentence *string  `json:"example_sentence"`
	Synonyms        []string `json:"synonyms"`
	Source          string   `json:"source" binding:"omitempty,oneof=manual ai dictionary"`
}

// VocabularyCreateDTO creates a word together with its meanings. At least one
// meaning is required; a word without a meaning cannot be scheduled.
type VocabularyCreateDTO struct {
	UserID   uint               `json:"user_id" binding:"required"`
	Word     string             `json:"word" binding:"required"`
	AudioURL *string            `json:"audio_url"`
	Meanings []MeaningCreateDTO `json:"meanings" binding:"required,min=1,dive"`
}

// VocabularyUpdateDTO updates the word surface or audio; schedule fields are
// never writable through the API.
type VocabularyUpdateDTO struct {
	UserID   uint    `json:"user_id" binding:"required"`
	Word     string  `json:"word" binding:"required"`
	AudioURL *string `json:"audio_url"`
}

type MeaningDTO struct {
	ID              uint     `json:"id"`
	Definition      string   `json:"definition"`
	ExampleSentence *string  `json:"example_sentence,omitempty"`
	Synonyms        []string `json:"synonyms,omitempty"`
	Source          string   `json:"source"`
}

type VocabularyDTO struct {
	ID             uint         `json:"id"`
	UserID         uint         `json:"user_id"`
	Word           string       `json:"word"`
	AudioURL       *string      `json:"audio_url,omitempty"`
	Meanings       []MeaningDTO `json:"meanings"`
	EasinessFactor float64      `json:"easiness_factor"`
	IntervalDays   int          `json:"interval_days"`
	Repetitions    int          `json:"repetitions"`
	NextReviewDate time.Time    `json:"next_review_date"`
	LastReviewDate *time.Time   `json:"last_review_date,omitempty"`
	MemoryStrength float64      `json:"memory_strength"`
	CreatedAt      time.Time    `json:"created_at"`
}
