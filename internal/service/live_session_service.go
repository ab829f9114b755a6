package service

import (
	"errors"
	"fmt"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type LiveSessionService struct {
	LiveRepo   *repository.LiveSessionRepository
	CourseRepo *repository.CourseRepository
}

func NewLiveSessionService(liveRepo *repository.LiveSessionRepository, courseRepo *repository.CourseRepository) *LiveSessionService {
	return &LiveSessionService{
		LiveRepo:   liveRepo,
		CourseRepo: courseRepo,
	}
}

type LiveSessionRequest struct {
	Title           string    `json:"title" binding:"required,min=3,max=200"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,min=5,max=480"`
}

func (s *LiveSessionService) Schedule(courseID, hostID uint, isAdmin bool, req LiveSessionRequest) (*model.LiveSession, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.InstructorID != hostID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	session := &model.LiveSession{
		CourseID:        courseID,
		HostID:          hostID,
		Title:           req.Title,
		RoomName:        fmt.Sprintf("course-%d-%s", courseID, model.GenerateUUID()[:8]),
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          model.LiveScheduled,
	}
	if err := s.LiveRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *LiveSessionService) Get(id uint) (*model.LiveSession, error) {
	session, err := s.LiveRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLiveSessionNotFound
	}
	return session, err
}

func (s *LiveSessionService) UpdateStatus(id, callerID uint, isAdmin bool, status model.LiveSessionStatus) (*model.LiveSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if session.HostID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	session.Status = status
	if err := s.LiveRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *LiveSessionService) Delete(id, callerID uint, isAdmin bool) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	if session.HostID != callerID && !isAdmin {
		return util.ErrPermissionDenied
	}

	return s.LiveRepo.Delete(id)
}

func (s *LiveSessionService) ListByCourse(courseID uint) ([]model.LiveSession, error) {
	return s.LiveRepo.ListByCourse(courseID)
}
