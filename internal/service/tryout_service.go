package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TryoutStore is the persistence surface session and participant
// operations depend on. *repository.TryoutRepository satisfies it.
type TryoutStore interface {
	CreateSession(session *model.TryoutSession) error
	FindSessionByID(id uint) (*model.TryoutSession, error)
	UpdateSession(session *model.TryoutSession) error
	ListSessions(courseID uint) ([]model.TryoutSession, error)
	CreateParticipant(p *model.TryoutParticipant) error
	FindParticipant(sessionID, userID uint) (*model.TryoutParticipant, error)
	ListSubmitted(sessionID uint) ([]model.TryoutParticipant, error)
	MarkSubmitted(participantID uint, score int, submittedAt time.Time, elapsedSeconds int) (bool, error)
}

// QuestionSetStore is the read surface grading needs from the set repo.
type QuestionSetStore interface {
	FindByID(id uint) (*model.QuestionSet, error)
	FindWithQuestions(id uint) (*model.QuestionSet, error)
}

// EnrollmentStore answers the course membership check.
type EnrollmentStore interface {
	IsEnrolled(courseID, userID uint) (bool, error)
}

// TryoutService grades timed quiz submissions and builds the session
// leaderboard.
type TryoutService struct {
	TryoutRepo     TryoutStore
	SetRepo        QuestionSetStore
	EnrollmentRepo EnrollmentStore
	Redis          *redis.Client
	CacheTTL       time.Duration
}

func NewTryoutService(
	tryoutRepo TryoutStore,
	setRepo QuestionSetStore,
	enrollmentRepo EnrollmentStore,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *TryoutService {
	return &TryoutService{
		TryoutRepo:     tryoutRepo,
		SetRepo:        setRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
		CacheTTL:       cacheTTL,
	}
}

type CreateSessionRequest struct {
	Title           string    `json:"title" binding:"required,min=3,max=200"`
	QuestionSetID   uint      `json:"questionSetId" binding:"required"`
	CourseID        uint      `json:"courseId" binding:"required"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	EndsAt          time.Time `json:"endsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,min=1"`
}

type UpdateSessionRequest struct {
	Title           string    `json:"title" binding:"required,min=3,max=200"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	EndsAt          time.Time `json:"endsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,min=1"`
}

type SubmissionResult struct {
	Score            int       `json:"score"`
	Total            int       `json:"total"`
	SubmittedAt      time.Time `json:"submittedAt"`
	TimeTakenSeconds int       `json:"timeTakenSeconds"`
}

type LeaderboardEntry struct {
	Rank             int        `json:"rank"`
	UserID           uint       `json:"userId"`
	Name             string     `json:"name"`
	Score            int        `json:"score"`
	SubmittedAt      *time.Time `json:"submittedAt"`
	TimeTakenSeconds *int       `json:"timeTakenSeconds"`
}

func (s *TryoutService) CreateSession(creatorID uint, req CreateSessionRequest) (*model.TryoutSession, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("session end must be after start")
	}

	if _, err := s.SetRepo.FindByID(req.QuestionSetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionSetNotFound
		}
		return nil, err
	}

	session := &model.TryoutSession{
		Title:           req.Title,
		QuestionSetID:   req.QuestionSetID,
		CourseID:        req.CourseID,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       creatorID,
	}
	if err := s.TryoutRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSession rewrites the window and title of a session owned by the
// caller. The question set binding stays fixed once participants may hold
// graded rows against it.
func (s *TryoutService) UpdateSession(id, callerID uint, isAdmin bool, req UpdateSessionRequest) (*model.TryoutSession, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	if session.CreatedBy != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("session end must be after start")
	}

	session.Title = req.Title
	session.StartsAt = req.StartsAt
	session.EndsAt = req.EndsAt
	session.DurationMinutes = req.DurationMinutes

	if err := s.TryoutRepo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *TryoutService) GetSession(id uint) (*model.TryoutSession, error) {
	session, err := s.TryoutRepo.FindSessionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return session, err
}

func (s *TryoutService) ListSessions(courseID uint) ([]model.TryoutSession, error) {
	return s.TryoutRepo.ListSessions(courseID)
}

// SessionWithQuestions loads a session and its question set in stored
// order, for the participant-facing detail view.
func (s *TryoutService) SessionWithQuestions(id uint) (*model.TryoutSession, *model.QuestionSet, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, nil, err
	}

	set, err := s.SetRepo.FindWithQuestions(session.QuestionSetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return session, set, nil
}

// Join enrolls the user into a running session. Enrollment is allowed any
// time within [start, end); joining twice returns the existing row.
func (s *TryoutService) Join(userID, sessionID uint, now time.Time) (*model.TryoutParticipant, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if now.Before(session.StartsAt) {
		return nil, util.ErrSessionNotYetOpen
	}
	if !now.Before(session.EndsAt) {
		return nil, util.ErrSessionClosed
	}

	enrolled, err := s.EnrollmentRepo.IsEnrolled(session.CourseID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	participant, err := s.TryoutRepo.FindParticipant(sessionID, userID)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	participant = &model.TryoutParticipant{SessionID: sessionID, UserID: userID}
	if err := s.TryoutRepo.CreateParticipant(participant); err != nil {
		// Lost a race against another join for the same user, the unique
		// (session, user) index kept it to one row.
		existing, findErr := s.TryoutRepo.FindParticipant(sessionID, userID)
		if findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return participant, nil
}

// Submit grades the answer vector against the session's question set and
// writes the result to the participant row exactly once.
func (s *TryoutService) Submit(userID, sessionID uint, answers []uint, elapsedSeconds int, now time.Time) (*SubmissionResult, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	participant, err := s.TryoutRepo.FindParticipant(sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	if participant.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	enrolled, err := s.EnrollmentRepo.IsEnrolled(session.CourseID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	if now.Before(session.StartsAt) {
		return nil, util.ErrSessionNotYetOpen
	}
	if !now.Before(session.EndsAt) {
		return nil, util.ErrSessionClosed
	}

	if participant.Submitted() {
		return nil, util.ErrAlreadySubmitted
	}

	set, err := s.SetRepo.FindWithQuestions(session.QuestionSetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(answers) != len(set.Questions) {
		return nil, util.ErrAnswerCountMismatch
	}

	score := scoreAnswers(set.Questions, answers)

	updated, err := s.TryoutRepo.MarkSubmitted(participant.ID, score, now, elapsedSeconds)
	if err != nil {
		return nil, err
	}
	if !updated {
		// A concurrent submission won the conditional update.
		return nil, util.ErrAlreadySubmitted
	}

	s.invalidateLeaderboard(sessionID)

	return &SubmissionResult{
		Score:            score,
		Total:            len(set.Questions),
		SubmittedAt:      now,
		TimeTakenSeconds: elapsedSeconds,
	}, nil
}

// scoreAnswers counts positional matches between the answer vector and the
// first correct option of each question. A question without a correct
// option contributes zero; the authoring flow is supposed to prevent that
// state and grading does not treat it as an error.
func scoreAnswers(questions []model.Question, answers []uint) int {
	score := 0
	for i, q := range questions {
		var correctID uint
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correctID = opt.ID
				break
			}
		}
		if correctID != 0 && answers[i] == correctID {
			score++
		}
	}
	return score
}

// rankParticipants orders submitted participants: score descending, then
// faster time, then a reported time over a missing one, then earlier
// submission. The sort is stable so equal entries keep their input order
// and ranking the same input twice yields the same sequence.
func rankParticipants(participants []model.TryoutParticipant) []LeaderboardEntry {
	ranked := make([]model.TryoutParticipant, 0, len(participants))
	for _, p := range participants {
		if p.Submitted() {
			ranked = append(ranked, p)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankLess(ranked[i], ranked[j])
	})

	entries := make([]LeaderboardEntry, len(ranked))
	for i, p := range ranked {
		score := 0
		if p.Score != nil {
			score = *p.Score
		}
		entries[i] = LeaderboardEntry{
			Rank:             i + 1,
			UserID:           p.UserID,
			Name:             p.User.Name,
			Score:            score,
			SubmittedAt:      p.SubmittedAt,
			TimeTakenSeconds: p.TimeTakenSeconds,
		}
	}
	return entries
}

func rankLess(a, b model.TryoutParticipant) bool {
	as, bs := 0, 0
	if a.Score != nil {
		as = *a.Score
	}
	if b.Score != nil {
		bs = *b.Score
	}
	if as != bs {
		return as > bs
	}

	switch {
	case a.TimeTakenSeconds != nil && b.TimeTakenSeconds != nil:
		if *a.TimeTakenSeconds != *b.TimeTakenSeconds {
			return *a.TimeTakenSeconds < *b.TimeTakenSeconds
		}
		return false
	case a.TimeTakenSeconds != nil:
		return true
	case b.TimeTakenSeconds != nil:
		return false
	}

	switch {
	case a.SubmittedAt != nil && b.SubmittedAt != nil:
		return a.SubmittedAt.Before(*b.SubmittedAt)
	case a.SubmittedAt != nil:
		return true
	case b.SubmittedAt != nil:
		return false
	}
	return false
}

// Leaderboard returns the ranked entries for a session, cached in redis
// for a short TTL and invalidated on every successful submission.
func (s *TryoutService) Leaderboard(ctx context.Context, sessionID uint) ([]LeaderboardEntry, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	key := leaderboardCacheKey(sessionID)
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if jsonErr := json.Unmarshal([]byte(cached), &entries); jsonErr == nil {
				return entries, nil
			}
		}
	}

	participants, err := s.TryoutRepo.ListSubmitted(sessionID)
	if err != nil {
		return nil, err
	}

	entries := rankParticipants(participants)

	if s.Redis != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := s.Redis.Set(ctx, key, payload, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Uint("session", sessionID), zap.Error(err))
			}
		}
	}

	return entries, nil
}

func (s *TryoutService) invalidateLeaderboard(sessionID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), leaderboardCacheKey(sessionID)).Err(); err != nil {
		logger.Log.Warn("leaderboard cache invalidation failed", zap.Uint("session", sessionID), zap.Error(err))
	}
}

func leaderboardCacheKey(sessionID uint) string {
	return fmt.Sprintf("tryout:leaderboard:%d", sessionID)
}
