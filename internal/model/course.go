package model

type Course struct {
	BaseModel
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Level        LevelTier `gorm:"type:enum('BEGINNER','INTERMEDIATE','ADVANCED');default:'BEGINNER'" json:"level"`
	InstructorID uint      `gorm:"index;not null" json:"instructorId"`
	Published    bool      `gorm:"default:false" json:"published"`
	CoverImage   string    `gorm:"size:255" json:"coverImage"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseModule struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Body     string `gorm:"type:longtext" json:"body"`
	Position int    `gorm:"not null;default:0" json:"position"`
	VideoURL string `gorm:"size:255" json:"videoUrl"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
