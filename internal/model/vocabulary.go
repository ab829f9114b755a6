package model

type Vocabulary struct {
	BaseModel
	Hangul             string    `gorm:"size:100;not null;index" json:"hangul"`
	Romanization       string    `gorm:"size:100" json:"romanization"`
	Translation        string    `gorm:"size:200;not null" json:"translation"`
	ExampleSentence    string    `gorm:"size:500" json:"exampleSentence"`
	ExampleTranslation string    `gorm:"size:500" json:"exampleTranslation"`
	Level              LevelTier `gorm:"type:enum('BEGINNER','INTERMEDIATE','ADVANCED');default:'BEGINNER'" json:"level"`
	AudioURL           string    `gorm:"size:255" json:"audioUrl"`
	ModuleID           *uint     `gorm:"index" json:"moduleId"`
	CreatedBy          uint      `gorm:"index;not null" json:"createdBy"`
}

func (Vocabulary) TableName() string {
	return "vocabularies"
}
