package model

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment ties a student to a course. One row per (course, user).
type Enrollment struct {
	BaseModel
	CourseID uint             `gorm:"index:idx_course_user,unique;not null" json:"courseId"`
	UserID   uint             `gorm:"index:idx_course_user,unique;not null" json:"userId"`
	Status   EnrollmentStatus `gorm:"type:enum('active','completed');default:'active'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
