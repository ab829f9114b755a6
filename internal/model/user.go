package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
	Disabled bool     `gorm:"default:false" json:"disabled"`

	// Progression. Level is derived from XP and never mutated on its own;
	// CurrentStreak may lag reality between a missed day and the next
	// activity (lazy reset), display always goes through the streak view.
	CurrentStreak  int        `gorm:"default:0" json:"currentStreak"`
	MaxStreak      int        `gorm:"default:0" json:"maxStreak"`
	LastActivityAt *time.Time `json:"lastActivityAt"`
	XP             int        `gorm:"default:0" json:"xp"`
	Level          int        `gorm:"default:1" json:"level"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
