package service

import (
	"errors"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type CourseRequest struct {
	Title       string          `json:"title" binding:"required,min=3,max=200"`
	Description string          `json:"description"`
	Level       model.LevelTier `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Published   bool            `json:"published"`
	CoverImage  string          `json:"coverImage"`
}

type ModuleRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Body     string `json:"body"`
	Position int    `json:"position"`
	VideoURL string `json:"videoUrl"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Level:        req.Level,
		InstructorID: instructorID,
		Published:    req.Published,
		CoverImage:   req.CoverImage,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindWithModules(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) UpdateCourse(id, callerID uint, isAdmin bool, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.InstructorID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Level = req.Level
	course.Published = req.Published
	if req.CoverImage != "" {
		course.CoverImage = req.CoverImage
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id, callerID uint, isAdmin bool) error {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	if course.InstructorID != callerID && !isAdmin {
		return util.ErrPermissionDenied
	}

	return s.CourseRepo.Delete(id)
}

func (s *CourseService) ListPublished(page, limit int, level model.LevelTier) ([]model.Course, int64, error) {
	return s.CourseRepo.ListPublished(page, limit, level)
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

// Enroll joins a student into a published course. Idempotent: re-enrolling
// returns the existing row.
func (s *CourseService) Enroll(courseID, userID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if !course.Published {
		return nil, util.ErrPermissionDenied
	}

	return s.EnrollmentRepo.Enroll(courseID, userID)
}

func (s *CourseService) ListEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

func (s *CourseService) AddModule(courseID, callerID uint, isAdmin bool, req ModuleRequest) (*model.CourseModule, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.InstructorID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	mod := &model.CourseModule{
		CourseID: courseID,
		Title:    req.Title,
		Body:     req.Body,
		Position: req.Position,
		VideoURL: req.VideoURL,
	}
	if err := s.CourseRepo.CreateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) UpdateModule(moduleID, callerID uint, isAdmin bool, req ModuleRequest) (*model.CourseModule, error) {
	mod, err := s.CourseRepo.FindModuleByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(mod.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	mod.Title = req.Title
	mod.Body = req.Body
	mod.Position = req.Position
	mod.VideoURL = req.VideoURL

	if err := s.CourseRepo.UpdateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) DeleteModule(moduleID, callerID uint, isAdmin bool) error {
	mod, err := s.CourseRepo.FindModuleByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrModuleNotFound
	}
	if err != nil {
		return err
	}

	course, err := s.CourseRepo.FindByID(mod.CourseID)
	if err != nil {
		return err
	}
	if course.InstructorID != callerID && !isAdmin {
		return util.ErrPermissionDenied
	}

	return s.CourseRepo.DeleteModule(moduleID)
}

// CompleteModule records that an enrolled student finished a module and
// reports whether it was the course's last one. Finishing the last module
// moves the enrollment to completed.
func (s *CourseService) CompleteModule(moduleID, userID uint) (*model.CourseModule, bool, error) {
	mod, err := s.CourseRepo.FindModuleByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, false, err
	}

	enrolled, err := s.EnrollmentRepo.IsEnrolled(mod.CourseID, userID)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, util.ErrNotEnrolled
	}

	modules, err := s.CourseRepo.ListModules(mod.CourseID)
	if err != nil {
		return nil, false, err
	}

	last := finalModule(modules, mod)
	if last {
		if err := s.EnrollmentRepo.MarkCompleted(mod.CourseID, userID); err != nil {
			return nil, false, err
		}
	}
	return mod, last, nil
}

// finalModule reports whether mod is the course's last module by position,
// with ID as the tiebreaker when positions collide.
func finalModule(modules []model.CourseModule, mod *model.CourseModule) bool {
	for _, m := range modules {
		if m.ID == mod.ID {
			continue
		}
		if m.Position > mod.Position || (m.Position == mod.Position && m.ID > mod.ID) {
			return false
		}
	}
	return true
}

func (s *CourseService) ListModules(courseID uint) ([]model.CourseModule, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.CourseRepo.ListModules(courseID)
}
