package model

// QuestionSet is a named, ordered collection of questions owned by an author.
type QuestionSet struct {
	BaseModel
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint      `gorm:"index;not null" json:"ownerId"`
	Public      bool      `gorm:"default:false" json:"public"`
	Level       LevelTier `gorm:"type:enum('BEGINNER','INTERMEDIATE','ADVANCED');default:'BEGINNER'" json:"level"`

	Questions []Question `gorm:"foreignKey:SetID" json:"questions,omitempty"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}
