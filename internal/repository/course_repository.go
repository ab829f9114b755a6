package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindWithModules(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) ListPublished(page, limit int, level model.LevelTier) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("published = ?", true)
	if level != "" {
		query = query.Where("level = ?", level)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CreateModule(mod *model.CourseModule) error {
	return r.DB.Create(mod).Error
}

func (r *CourseRepository) FindModuleByID(id uint) (*model.CourseModule, error) {
	var mod model.CourseModule
	err := r.DB.First(&mod, id).Error
	return &mod, err
}

func (r *CourseRepository) UpdateModule(mod *model.CourseModule) error {
	return r.DB.Save(mod).Error
}

func (r *CourseRepository) DeleteModule(id uint) error {
	return r.DB.Delete(&model.CourseModule{}, id).Error
}

func (r *CourseRepository) ListModules(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).Order("position ASC").Find(&modules).Error
	return modules, err
}
