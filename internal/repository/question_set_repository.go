package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionSetRepository struct {
	DB *gorm.DB
}

func NewQuestionSetRepository(db *gorm.DB) *QuestionSetRepository {
	return &QuestionSetRepository{DB: db}
}

func (r *QuestionSetRepository) Create(set *model.QuestionSet) error {
	return r.DB.Create(set).Error
}

func (r *QuestionSetRepository) FindByID(id uint) (*model.QuestionSet, error) {
	var set model.QuestionSet
	err := r.DB.First(&set, id).Error
	return &set, err
}

// FindWithQuestions loads the set with questions in stored order and their
// options. Grading depends on this order being stable.
func (r *QuestionSetRepository) FindWithQuestions(id uint) (*model.QuestionSet, error) {
	var set model.QuestionSet
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&set, id).Error
	return &set, err
}

func (r *QuestionSetRepository) Update(set *model.QuestionSet) error {
	return r.DB.Save(set).Error
}

func (r *QuestionSetRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("set_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("set_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.QuestionSet{}, id).Error
	})
}

// ListVisible returns public sets plus the caller's own.
func (r *QuestionSetRepository) ListVisible(userID uint) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	err := r.DB.Where("public = ? OR owner_id = ?", true, userID).
		Order("created_at DESC").Find(&sets).Error
	return sets, err
}

func (r *QuestionSetRepository) CountQuestions(setID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("set_id = ?", setID).Count(&count).Error
	return count, err
}

// CreateQuestion stores a question together with its options.
func (r *QuestionSetRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionSetRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Options").First(&question, id).Error
	return &question, err
}

func (r *QuestionSetRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Save(question).Error
	})
}

func (r *QuestionSetRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}
