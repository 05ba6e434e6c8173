package repository

import (
	"time"

	"github.com/ptvinh/wordnest/internal/model"
	"gorm.io/gorm"
)

type ReviewSessionRepository interface {
	Create(session *model.ReviewSession) error
	FindByIDWithQuestions(id uint) (*model.ReviewSession, error)
	FindAllByUser(userID uint) ([]model.ReviewSession, error)
	Update(session *model.ReviewSession) error
	AbandonStale(cutoff time.Time) (int64, error)
}

type reviewSessionRepository struct {
	db *gorm.DB
}

func NewReviewSessionRepository(db *gorm.DB) ReviewSessionRepository {
	return &reviewSessionRepository{db: db}
}

func (r *reviewSessionRepository) Create(session *model.ReviewSession) error {
	// GORM creates the associated GeneratedQuestion rows alongside.
	return r.db.Create(session).Error
}

func (r *reviewSessionRepository) FindByIDWithQuestions(id uint) (*model.ReviewSession, error) {
	var session model.ReviewSession
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("generated_questions.id ASC")
	}).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *reviewSessionRepository) FindAllByUser(userID uint) ([]model.ReviewSession, error) {
	var sessions []model.ReviewSession
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *reviewSessionRepository) Update(session *model.ReviewSession) error {
	return r.db.Save(session).Error
}

// AbandonStale flips active sessions with no activity since cutoff to
// abandoned. Schedule state is untouched; abandonment never mutates it.
func (r *reviewSessionRepository) AbandonStale(cutoff time.Time) (int64, error) {
	res := r.db.Model(&model.ReviewSession{}).
		Where("status = ? AND last_activity_at < ?", model.SessionActive, cutoff).
		Update("status", model.SessionAbandoned)
	return res.RowsAffected, res.Error
}
