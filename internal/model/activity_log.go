package model

type ActivityType string

const (
	ActivityLogin               ActivityType = "login"
	ActivityModuleCompleted     ActivityType = "module_completed"
	ActivityVocabularyReview    ActivityType = "vocabulary_review"
	ActivityTryoutSubmitted     ActivityType = "tryout_submitted"
	ActivityLiveSessionAttended ActivityType = "live_session_attended"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityLogin, ActivityModuleCompleted, ActivityVocabularyReview,
		ActivityTryoutSubmitted, ActivityLiveSessionAttended:
		return true
	}
	return false
}

// ActivityLog is the append-only audit trail of progression events.
// Rows are never updated after creation.
type ActivityLog struct {
	UUIDBase
	UserID         uint         `gorm:"index;not null" json:"userId"`
	Type           ActivityType `gorm:"size:40;not null" json:"type"`
	Description    string       `gorm:"size:255" json:"description"`
	XPEarned       int          `gorm:"not null;default:0" json:"xpEarned"`
	StreakUpdated  bool         `gorm:"not null;default:false" json:"streakUpdated"`
	PreviousStreak int          `gorm:"not null;default:0" json:"previousStreak"`
	NewStreak      int          `gorm:"not null;default:0" json:"newStreak"`
	PreviousLevel  int          `gorm:"not null;default:1" json:"previousLevel"`
	NewLevel       int          `gorm:"not null;default:1" json:"newLevel"`
	Metadata       string       `gorm:"type:text" json:"metadata,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
