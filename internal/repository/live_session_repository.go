package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type LiveSessionRepository struct {
	DB *gorm.DB
}

func NewLiveSessionRepository(db *gorm.DB) *LiveSessionRepository {
	return &LiveSessionRepository{DB: db}
}

func (r *LiveSessionRepository) Create(session *model.LiveSession) error {
	return r.DB.Create(session).Error
}

func (r *LiveSessionRepository) FindByID(id uint) (*model.LiveSession, error) {
	var session model.LiveSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *LiveSessionRepository) Update(session *model.LiveSession) error {
	return r.DB.Save(session).Error
}

func (r *LiveSessionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LiveSession{}, id).Error
}

func (r *LiveSessionRepository) ListByCourse(courseID uint) ([]model.LiveSession, error) {
	var sessions []model.LiveSession
	err := r.DB.Where("course_id = ?", courseID).Order("scheduled_at ASC").Find(&sessions).Error
	return sessions, err
}
