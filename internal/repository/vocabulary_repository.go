package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type VocabularyRepository struct {
	DB *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{DB: db}
}

func (r *VocabularyRepository) Create(entry *model.Vocabulary) error {
	return r.DB.Create(entry).Error
}

func (r *VocabularyRepository) FindByID(id uint) (*model.Vocabulary, error) {
	var entry model.Vocabulary
	err := r.DB.First(&entry, id).Error
	return &entry, err
}

func (r *VocabularyRepository) Update(entry *model.Vocabulary) error {
	return r.DB.Save(entry).Error
}

func (r *VocabularyRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Vocabulary{}, id).Error
}

func (r *VocabularyRepository) List(page, limit int, level model.LevelTier, search string) ([]model.Vocabulary, int64, error) {
	var entries []model.Vocabulary
	var total int64

	query := r.DB.Model(&model.Vocabulary{})
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("hangul LIKE ? OR romanization LIKE ? OR translation LIKE ?", term, term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).Order("hangul ASC").Find(&entries).Error
	return entries, total, err
}
