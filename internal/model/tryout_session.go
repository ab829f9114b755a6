package model

import "time"

// TryoutSession is a timed quiz over one question set. Submissions are
// accepted during the half-open window [StartsAt, EndsAt).
type TryoutSession struct {
	BaseModel
	Title           string    `gorm:"size:200;not null" json:"title"`
	QuestionSetID   uint      `gorm:"index;not null" json:"questionSetId"`
	CourseID        uint      `gorm:"index;not null" json:"courseId"`
	StartsAt        time.Time `gorm:"not null" json:"startsAt"`
	EndsAt          time.Time `gorm:"not null" json:"endsAt"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	CreatedBy       uint      `gorm:"index;not null" json:"createdBy"`
}

func (TryoutSession) TableName() string {
	return "tryout_sessions"
}

// Open reports whether submissions are accepted at t.
func (s *TryoutSession) Open(t time.Time) bool {
	return !t.Before(s.StartsAt) && t.Before(s.EndsAt)
}
