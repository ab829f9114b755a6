package model

import "time"

type LiveSessionStatus string

const (
	LiveScheduled LiveSessionStatus = "scheduled"
	LiveRunning   LiveSessionStatus = "live"
	LiveEnded     LiveSessionStatus = "ended"
	LiveCancelled LiveSessionStatus = "cancelled"
)

// LiveSession is a scheduling record only; room tokens and the video
// integration itself live outside this service.
type LiveSession struct {
	BaseModel
	CourseID        uint              `gorm:"index;not null" json:"courseId"`
	HostID          uint              `gorm:"index;not null" json:"hostId"`
	Title           string            `gorm:"size:200;not null" json:"title"`
	RoomName        string            `gorm:"size:100;not null" json:"roomName"`
	ScheduledAt     time.Time         `gorm:"not null" json:"scheduledAt"`
	DurationMinutes int               `gorm:"not null;default:60" json:"durationMinutes"`
	Status          LiveSessionStatus `gorm:"type:enum('scheduled','live','ended','cancelled');default:'scheduled'" json:"status"`
}

func (LiveSession) TableName() string {
	return "live_sessions"
}
