package repository

import (
	"time"

	"github.com/ptvinh/wordnest/internal/model"
	"gorm.io/gorm"
)

type VocabularyRepository interface {
	Create(vocab *model.Vocabulary) error
	FindByID(id uint) (*model.Vocabulary, error)
	FindByIDForUser(id, userID uint) (*model.Vocabulary, error)
	FindAllByUser(userID uint) ([]model.Vocabulary, error)
	FindDueByUser(userID uint, asOf time.Time, limit int) ([]model.Vocabulary, error)
	FindUnseenByUser(userID uint, limit int) ([]model.Vocabulary, error)
	Update(vocab *model.Vocabulary) error
	Delete(id, userID uint) error
}

type vocabularyRepository struct {
	db *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func (r *vocabularyRepository) Create(vocab *model.Vocabulary) error {
	// Creates associated meanings in the same statement batch.
	return r.db.Create(vocab).Error
}

func (r *vocabularyRepository) FindByID(id uint) (*model.Vocabulary, error) {
	var vocab model.Vocabulary
	if err := r.db.Preload("Meanings").First(&vocab, id).Error; err != nil {
		return nil, err
	}
	return &vocab, nil
}

func (r *vocabularyRepository) FindByIDForUser(id, userID uint) (*model.Vocabulary, error) {
	var vocab model.Vocabulary
	err := r.db.Preload("Meanings").
		Where("id = ? AND user_id = ?", id, userID).
		First(&vocab).Error
	if err != nil {
		return nil, err
	}
	return &vocab, nil
}

func (r *vocabularyRepository) FindAllByUser(userID uint) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	err := r.db.Preload("Meanings").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&vocabs).Error
	return vocabs, err
}

func (r *vocabularyRepository) FindDueByUser(userID uint, asOf time.Time, limit int) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	query := r.db.Preload("Meanings").
		Where("user_id = ? AND next_review_date <= ?", userID, asOf).
		Order("next_review_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&vocabs).Error
	return vocabs, err
}

func (r *vocabularyRepository) FindUnseenByUser(userID uint, limit int) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	// repetitions = 0 would also match lapsed items, since an Again grade
	// resets the counter; only a null last review marks a never-seen word.
	query := r.db.Preload("Meanings").
		Where("user_id = ? AND last_review_date IS NULL", userID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&vocabs).Error
	return vocabs, err
}

func (r *vocabularyRepository) Update(vocab *model.Vocabulary) error {
	return r.db.Save(vocab).Error
}

func (r *vocabularyRepository) Delete(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Vocabulary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
