package service

import (
	"errors"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"gorm.io/gorm"
)

type VocabularyService struct {
	VocabRepo *repository.VocabularyRepository
}

func NewVocabularyService(vocabRepo *repository.VocabularyRepository) *VocabularyService {
	return &VocabularyService{VocabRepo: vocabRepo}
}

type VocabularyRequest struct {
	Hangul             string          `json:"hangul" binding:"required,max=100"`
	Romanization       string          `json:"romanization" binding:"max=100"`
	Translation        string          `json:"translation" binding:"required,max=200"`
	ExampleSentence    string          `json:"exampleSentence" binding:"max=500"`
	ExampleTranslation string          `json:"exampleTranslation" binding:"max=500"`
	Level              model.LevelTier `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	AudioURL           string          `json:"audioUrl"`
	ModuleID           *uint           `json:"moduleId"`
}

func (s *VocabularyService) Create(creatorID uint, req VocabularyRequest) (*model.Vocabulary, error) {
	entry := &model.Vocabulary{
		Hangul:             req.Hangul,
		Romanization:       req.Romanization,
		Translation:        req.Translation,
		ExampleSentence:    req.ExampleSentence,
		ExampleTranslation: req.ExampleTranslation,
		Level:              req.Level,
		AudioURL:           req.AudioURL,
		ModuleID:           req.ModuleID,
		CreatedBy:          creatorID,
	}
	if err := s.VocabRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *VocabularyService) Get(id uint) (*model.Vocabulary, error) {
	entry, err := s.VocabRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVocabularyNotFound
	}
	return entry, err
}

func (s *VocabularyService) Update(id uint, req VocabularyRequest) (*model.Vocabulary, error) {
	entry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	entry.Hangul = req.Hangul
	entry.Romanization = req.Romanization
	entry.Translation = req.Translation
	entry.ExampleSentence = req.ExampleSentence
	entry.ExampleTranslation = req.ExampleTranslation
	entry.Level = req.Level
	entry.ModuleID = req.ModuleID
	if req.AudioURL != "" {
		entry.AudioURL = req.AudioURL
	}

	if err := s.VocabRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *VocabularyService) SetAudioURL(id uint, url string) (*model.Vocabulary, error) {
	entry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	entry.AudioURL = url
	if err := s.VocabRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *VocabularyService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.VocabRepo.Delete(id)
}

func (s *VocabularyService) List(page, limit int, level model.LevelTier, search string) ([]model.Vocabulary, int64, error) {
	return s.VocabRepo.List(page, limit, level, search)
}
