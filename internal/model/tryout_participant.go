package model

import "time"

// TryoutParticipant joins one user to one tryout session. Score,
// SubmittedAt and TimeTakenSeconds stay NULL until grading writes all
// three in a single conditional update; after that the row is immutable.
type TryoutParticipant struct {
	BaseModel
	SessionID        uint       `gorm:"index:idx_session_user,unique;not null" json:"sessionId"`
	UserID           uint       `gorm:"index:idx_session_user,unique;not null" json:"userId"`
	Score            *int       `json:"score"`
	SubmittedAt      *time.Time `json:"submittedAt"`
	TimeTakenSeconds *int       `json:"timeTakenSeconds"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TryoutParticipant) TableName() string {
	return "tryout_participants"
}

func (p *TryoutParticipant) Submitted() bool {
	return p.SubmittedAt != nil
}
