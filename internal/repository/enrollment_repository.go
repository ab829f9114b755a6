package repository

import (
	"errors"
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Enroll creates the (course, user) row if it does not exist yet.
func (r *EnrollmentRepository) Enroll(courseID, userID uint) (*model.Enrollment, error) {
	enrollment := model.Enrollment{
		CourseID: courseID,
		UserID:   userID,
		Status:   model.EnrollmentActive,
	}
	err := r.DB.Where("course_id = ? AND user_id = ?", courseID, userID).
		FirstOrCreate(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) IsEnrolled(courseID, userID uint) (bool, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) MarkCompleted(courseID, userID uint) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Update("status", model.EnrollmentCompleted).
		Error
}
