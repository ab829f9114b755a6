package service

import (
	"errors"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// XP needed per level. Level is always xp/XPPerLevel + 1.
const XPPerLevel = 1000

// ProgressionService maintains the per-user daily streak and XP counters
// from typed activity events. recordActivity is the only writer of the
// streak fields; reads for display go through StreakView because the
// stored streak is reset lazily and can be stale-positive after a
// missed day.
type ProgressionService struct {
	UserRepo *repository.UserRepository
	LogRepo  *repository.ActivityLogRepository
	DB       *gorm.DB
}

func NewProgressionService(userRepo *repository.UserRepository, logRepo *repository.ActivityLogRepository, db *gorm.DB) *ProgressionService {
	return &ProgressionService{
		UserRepo: userRepo,
		LogRepo:  logRepo,
		DB:       db,
	}
}

type StreakChange struct {
	Previous int  `json:"previous"`
	Current  int  `json:"current"`
	Max      int  `json:"max"`
	Updated  bool `json:"updated"`
}

type XPChange struct {
	Previous int `json:"previous"`
	Earned   int `json:"earned"`
	Current  int `json:"current"`
}

type LevelChange struct {
	Previous  int  `json:"previous"`
	Current   int  `json:"current"`
	LeveledUp bool `json:"leveledUp"`
}

type ActivityResult struct {
	Streak StreakChange       `json:"streak"`
	XP     XPChange           `json:"xp"`
	Level  LevelChange        `json:"level"`
	Log    *model.ActivityLog `json:"logEntry"`
}

type StreakStatus struct {
	IsActive           bool `json:"isActive"`
	CanContinueToday   bool `json:"canContinueToday"`
	NeedsActivityToday bool `json:"needsActivityToday"`
	MissedDays         int  `json:"missedDays"`
}

type StreakView struct {
	CurrentStreak         int          `json:"currentStreak"`
	MaxStreak             int          `json:"maxStreak"`
	DaysSinceLastActivity int          `json:"daysSinceLastActivity"`
	ShouldReset           bool         `json:"shouldReset"`
	Status                StreakStatus `json:"status"`
}

// progressionState is the snapshot of a user's progression fields that the
// pure transition functions operate on.
type progressionState struct {
	CurrentStreak  int
	MaxStreak      int
	LastActivityAt *time.Time
	XP             int
	Level          int
}

type progressionTransition struct {
	Streak        int
	StreakUpdated bool
	MaxStreak     int
	XP            int
	Level         int
}

// RecordActivity applies one activity event to the user's progression
// fields and appends the audit log entry, all inside one transaction with
// the user row locked so concurrent events for the same user serialize
// instead of losing updates.
func (s *ProgressionService) RecordActivity(userID uint, activityType model.ActivityType, xpEarned int, description, metadata string, now time.Time) (*ActivityResult, error) {
	if !activityType.Valid() {
		return nil, util.ErrInvalidActivityType
	}
	if xpEarned < 0 {
		xpEarned = 0
	}

	var result *ActivityResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}

		state := progressionState{
			CurrentStreak:  user.CurrentStreak,
			MaxStreak:      user.MaxStreak,
			LastActivityAt: user.LastActivityAt,
			XP:             user.XP,
			Level:          user.Level,
		}
		tr := advanceProgression(state, xpEarned, now)

		updates := map[string]interface{}{
			"current_streak":   tr.Streak,
			"max_streak":       tr.MaxStreak,
			"last_activity_at": now,
			"xp":               tr.XP,
			"level":            tr.Level,
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		entry := &model.ActivityLog{
			UserID:         userID,
			Type:           activityType,
			Description:    description,
			XPEarned:       xpEarned,
			StreakUpdated:  tr.StreakUpdated,
			PreviousStreak: state.CurrentStreak,
			NewStreak:      tr.Streak,
			PreviousLevel:  state.Level,
			NewLevel:       tr.Level,
			Metadata:       metadata,
		}
		if err := s.LogRepo.CreateTx(tx, entry); err != nil {
			return err
		}

		result = &ActivityResult{
			Streak: StreakChange{
				Previous: state.CurrentStreak,
				Current:  tr.Streak,
				Max:      tr.MaxStreak,
				Updated:  tr.StreakUpdated,
			},
			XP: XPChange{
				Previous: state.XP,
				Earned:   xpEarned,
				Current:  tr.XP,
			},
			Level: LevelChange{
				Previous:  state.Level,
				Current:   tr.Level,
				LeveledUp: tr.Level > state.Level,
			},
			Log: entry,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetStreakView projects the user's streak for display without touching
// stored state.
func (s *ProgressionService) GetStreakView(userID uint, now time.Time) (*StreakView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	view := streakView(progressionState{
		CurrentStreak:  user.CurrentStreak,
		MaxStreak:      user.MaxStreak,
		LastActivityAt: user.LastActivityAt,
		XP:             user.XP,
		Level:          user.Level,
	}, now)
	return &view, nil
}

func (s *ProgressionService) ListActivities(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	return s.LogRepo.ListByUser(userID, page, limit)
}

// TopByXP returns the highest-XP users for the platform-wide leaderboard.
func (s *ProgressionService) TopByXP(limit int) ([]model.User, error) {
	return s.UserRepo.FindTopByXP(limit)
}

// advanceProgression computes the next progression state from one event.
// Streak transitions compare calendar days, not timestamps: same day keeps
// the streak, the next day extends it, any longer gap resets it to 1. A
// clock that moved backwards is treated as same-day.
func advanceProgression(st progressionState, xpEarned int, now time.Time) progressionTransition {
	streak := st.CurrentStreak
	updated := false

	if st.LastActivityAt == nil {
		streak = 1
		updated = true
	} else {
		switch days := calendarDaysBetween(*st.LastActivityAt, now); {
		case days <= 0:
			// Same day, or clock skew. Streak unchanged.
		case days == 1:
			streak = st.CurrentStreak + 1
			updated = true
		default:
			streak = 1
			updated = true
		}
	}

	maxStreak := st.MaxStreak
	if streak > maxStreak {
		maxStreak = streak
	}

	xp := st.XP + xpEarned

	return progressionTransition{
		Streak:        streak,
		StreakUpdated: updated,
		MaxStreak:     maxStreak,
		XP:            xp,
		Level:         levelForXP(xp),
	}
}

// streakView presents the effective streak: a stored streak older than one
// calendar day shows as 0 even though the row still holds the stale value
// (the reset itself only happens on the next recorded activity).
func streakView(st progressionState, now time.Time) StreakView {
	if st.LastActivityAt == nil {
		return StreakView{MaxStreak: st.MaxStreak}
	}

	days := calendarDaysBetween(*st.LastActivityAt, now)
	if days < 0 {
		days = 0
	}

	shouldReset := days > 1
	effective := st.CurrentStreak
	if shouldReset {
		effective = 0
	}

	missed := 0
	if days > 1 {
		missed = days - 1
	}

	return StreakView{
		CurrentStreak:         effective,
		MaxStreak:             st.MaxStreak,
		DaysSinceLastActivity: days,
		ShouldReset:           shouldReset,
		Status: StreakStatus{
			IsActive:           !shouldReset && effective > 0,
			CanContinueToday:   days == 0,
			NeedsActivityToday: days == 1,
			MissedDays:         missed,
		},
	}
}

func levelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// calendarDaysBetween counts whole calendar days from the day of `from` to
// the day of `to`, using wall-clock dates. Mapping both dates onto UTC
// midnights keeps the subtraction an exact multiple of 24h.
func calendarDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
