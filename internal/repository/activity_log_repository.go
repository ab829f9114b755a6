package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

// CreateTx appends a log entry inside the caller's transaction. Entries are
// never updated or deleted afterwards.
func (r *ActivityLogRepository) CreateTx(tx *gorm.DB, entry *model.ActivityLog) error {
	return tx.Create(entry).Error
}

func (r *ActivityLogRepository) ListByUser(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	var entries []model.ActivityLog
	var total int64

	query := r.DB.Model(&model.ActivityLog{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&entries).Error
	return entries, total, err
}
