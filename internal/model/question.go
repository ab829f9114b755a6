package model

// Question is immutable once a tryout session references its set; the
// authoring workflow guarantees at least one correct option, the grader
// does not re-check it.
type Question struct {
	BaseModel
	SetID      uint      `gorm:"index;not null" json:"setId"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Prompt     string    `gorm:"type:text;not null" json:"prompt"`
	Attachment string    `gorm:"size:255" json:"attachment"`
	Level      LevelTier `gorm:"type:enum('BEGINNER','INTERMEDIATE','ADVANCED');default:'BEGINNER'" json:"level"`

	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
