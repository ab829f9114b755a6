package repository

import (
	"hangul_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TryoutRepository struct {
	DB *gorm.DB
}

func NewTryoutRepository(db *gorm.DB) *TryoutRepository {
	return &TryoutRepository{DB: db}
}

func (r *TryoutRepository) CreateSession(session *model.TryoutSession) error {
	return r.DB.Create(session).Error
}

func (r *TryoutRepository) FindSessionByID(id uint) (*model.TryoutSession, error) {
	var session model.TryoutSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *TryoutRepository) UpdateSession(session *model.TryoutSession) error {
	return r.DB.Save(session).Error
}

func (r *TryoutRepository) ListSessions(courseID uint) ([]model.TryoutSession, error) {
	var sessions []model.TryoutSession
	query := r.DB.Model(&model.TryoutSession{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	err := query.Order("starts_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *TryoutRepository) CreateParticipant(p *model.TryoutParticipant) error {
	return r.DB.Create(p).Error
}

func (r *TryoutRepository) FindParticipant(sessionID, userID uint) (*model.TryoutParticipant, error) {
	var p model.TryoutParticipant
	err := r.DB.Where("session_id = ? AND user_id = ?", sessionID, userID).First(&p).Error
	return &p, err
}

// ListSubmitted returns all participants of a session that have submitted,
// with their user preloaded, in join order.
func (r *TryoutRepository) ListSubmitted(sessionID uint) ([]model.TryoutParticipant, error) {
	var participants []model.TryoutParticipant
	err := r.DB.Preload("User").
		Where("session_id = ? AND submitted_at IS NOT NULL", sessionID).
		Order("id ASC").
		Find(&participants).Error
	return participants, err
}

// MarkSubmitted writes score, submission time and elapsed seconds in one
// conditional update. The submitted_at IS NULL guard makes grading
// at-most-once even when two submissions race across processes; the
// loser sees zero affected rows.
func (r *TryoutRepository) MarkSubmitted(participantID uint, score int, submittedAt time.Time, elapsedSeconds int) (bool, error) {
	result := r.DB.Model(&model.TryoutParticipant{}).
		Where("id = ? AND submitted_at IS NULL", participantID).
		Updates(map[string]interface{}{
			"score":              score,
			"submitted_at":       submittedAt,
			"time_taken_seconds": elapsedSeconds,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
