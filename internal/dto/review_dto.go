package dto

import "time"

// QuestionDTO is the client-facing view of one generated question. The
// canonical answer deliberately has no field here; for every type except
// multiple choice it would leak the solution, and for multiple choice the
// options carry it in shuffled position anyway.
type QuestionDTO struct {
	InstanceID      string   `json:"instance_id"`
	VocabularyID    uint     `json:"vocabulary_id"`
	Type            string   `json:"type"`
	Prompt          string   `json:"prompt"`
	ContextSentence *string  `json:"context_sentence,omitempty"`
	Options         []string `json:"options,omitempty"`
	AudioURL        *string  `json:"audio_url,omitempty"`
}

// SessionStartDTO is the request body for starting a review session.
type SessionStartDTO struct {
	UserID       uint   `json:"user_id" binding:"required"` // Temporary, until an auth layer supplies it
	Mode         string `json:"mode" binding:"omitempty,oneof=due new"`
	MaxQuestions int    `json:"max_questions" binding:"omitempty,min=1,max=100"`
}

// SessionResponseDTO is returned when a session is started.
type SessionResponseDTO struct {
	SessionID      uint          `json:"session_id"`
	Status         string        `json:"status"`
	TotalQuestions int           `json:"total_questions"`
	Questions      []QuestionDTO `json:"questions"`
	StartedAt      time.Time     `json:"started_at"`
}

// SubmissionDTO is one answered question with its client telemetry.
type SubmissionDTO struct {
	InstanceID        string `json:"instance_id" binding:"required"`
	Answer            string `json:"answer"`
	TimeSpentMs       int    `json:"time_spent_ms" binding:"min=0"`
	AnswerChangeCount int    `json:"answer_change_count" binding:"min=0"`
}

// BatchSubmitDTO submits every answer of a session at once.
type BatchSubmitDTO struct {
	UserID      uint            `json:"user_id" binding:"required"`
	Submissions []SubmissionDTO `json:"submissions" binding:"required,min=1,dive"`
}

// QuestionResultDTO reports the grading outcome of one submission. The
// canonical answer is revealed here, after the learner has committed theirs.
type QuestionResultDTO struct {
	InstanceID     string    `json:"instance_id"`
	VocabularyID   uint      `json:"vocabulary_id"`
	IsCorrect      bool      `json:"is_correct"`
	Quality        string    `json:"quality"`
	CorrectAnswer  string    `json:"correct_answer"`
	NextReviewDate time.Time `json:"next_review_date"`
	IntervalDays   int       `json:"interval_days"`
}

// SessionSummaryDTO is returned after a batch submission completes a session.
type SessionSummaryDTO struct {
	SessionID      uint                `json:"session_id"`
	Status         string              `json:"status"`
	TotalQuestions int                 `json:"total_questions"`
	CorrectCount   int                 `json:"correct_count"`
	Accuracy       float64             `json:"accuracy"`
	TotalTimeMs    int                 `json:"total_time_ms"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	Results        []QuestionResultDTO `json:"results"`
}

// SessionDetailDTO is the read view of an existing session.
type SessionDetailDTO struct {
	SessionID      uint          `json:"session_id"`
	UserID         uint          `json:"user_id"`
	Status         string        `json:"status"`
	TotalQuestions int           `json:"total_questions"`
	CorrectCount   int           `json:"correct_count"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	Questions      []QuestionDTO `json:"questions,omitempty"`
}

// AbandonDTO identifies the caller abandoning a session.
type AbandonDTO struct {
	UserID uint `json:"user_id" binding:"required"`
}
