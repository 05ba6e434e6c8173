package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringArray stores a JSON-encoded list of strings in a text column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into StringArray", src)
	}
}

// GeneratedQuestion is the persisted snapshot of one question instance issued
// within a review session. CorrectAnswer never leaves the server; clients only
// ever see the instance id, prompt, options and context.
type GeneratedQuestion struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	InstanceID   string `json:"instance_id" gorm:"not null;uniqueIndex"`
	SessionID    uint   `json:"session_id" gorm:"not null;index"`
	VocabularyID uint   `json:"vocabulary_id" gorm:"not null;index"`

	Type            string      `json:"type" gorm:"not null"`
	Prompt          string      `json:"prompt" gorm:"type:text;not null"`
	ContextSentence *string     `json:"context_sentence,omitempty" gorm:"type:text"`
	Options         StringArray `json:"options,omitempty" gorm:"type:text"`
	AudioURL        *string     `json:"audio_url,omitempty"`
	CorrectAnswer   string      `json:"-" gorm:"type:text;not null"`

	UserAnswer        *string `json:"user_answer,omitempty" gorm:"type:text"`
	IsCorrect         *bool   `json:"is_correct,omitempty"`
	Quality           *int    `json:"quality,omitempty"`
	TimeSpentMs       *int    `json:"time_spent_ms,omitempty"`
	AnswerChangeCount *int    `json:"answer_change_count,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
