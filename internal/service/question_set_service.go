package service

import (
	"errors"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionSetService struct {
	SetRepo *repository.QuestionSetRepository
}

func NewQuestionSetService(setRepo *repository.QuestionSetRepository) *QuestionSetService {
	return &QuestionSetService{SetRepo: setRepo}
}

type QuestionSetRequest struct {
	Title       string          `json:"title" binding:"required,min=3,max=200"`
	Description string          `json:"description"`
	Public      bool            `json:"public"`
	Level       model.LevelTier `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
}

type OptionRequest struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	Prompt     string          `json:"prompt" binding:"required"`
	Position   int             `json:"position"`
	Attachment string          `json:"attachment"`
	Level      model.LevelTier `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Options    []OptionRequest `json:"options" binding:"required,min=2,dive"`
}

func (s *QuestionSetService) CreateSet(ownerID uint, req QuestionSetRequest) (*model.QuestionSet, error) {
	set := &model.QuestionSet{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
		Public:      req.Public,
		Level:       req.Level,
	}
	if err := s.SetRepo.Create(set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *QuestionSetService) GetSet(id, callerID uint, isAdmin bool) (*model.QuestionSet, error) {
	set, err := s.SetRepo.FindWithQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, err
	}

	if !set.Public && set.OwnerID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}
	return set, nil
}

func (s *QuestionSetService) UpdateSet(id, callerID uint, isAdmin bool, req QuestionSetRequest) (*model.QuestionSet, error) {
	set, err := s.SetRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, err
	}

	if set.OwnerID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	set.Title = req.Title
	set.Description = req.Description
	set.Public = req.Public
	set.Level = req.Level

	if err := s.SetRepo.Update(set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *QuestionSetService) DeleteSet(id, callerID uint, isAdmin bool) error {
	set, err := s.SetRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionSetNotFound
	}
	if err != nil {
		return err
	}

	if set.OwnerID != callerID && !isAdmin {
		return util.ErrPermissionDenied
	}

	return s.SetRepo.Delete(id)
}

func (s *QuestionSetService) ListVisible(userID uint) ([]model.QuestionSet, error) {
	return s.SetRepo.ListVisible(userID)
}

// AddQuestion appends a question to a set. At least one option must be
// flagged correct; this is the authoring-time guard the grader relies on.
func (s *QuestionSetService) AddQuestion(setID, callerID uint, isAdmin bool, req QuestionRequest) (*model.Question, error) {
	set, err := s.SetRepo.FindByID(setID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, err
	}

	if set.OwnerID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	hasCorrect := false
	for _, opt := range req.Options {
		if opt.IsCorrect {
			hasCorrect = true
			break
		}
	}
	if !hasCorrect {
		return nil, errors.New("question must have at least one correct option")
	}

	if req.Position == 0 {
		count, err := s.SetRepo.CountQuestions(setID)
		if err != nil {
			return nil, err
		}
		req.Position = int(count) + 1
	}

	question := &model.Question{
		SetID:      setID,
		Position:   req.Position,
		Prompt:     req.Prompt,
		Attachment: req.Attachment,
		Level:      req.Level,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.Option{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}

	if err := s.SetRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion replaces the question's fields and its full option list.
func (s *QuestionSetService) UpdateQuestion(questionID, callerID uint, isAdmin bool, req QuestionRequest) (*model.Question, error) {
	question, err := s.SetRepo.FindQuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	set, err := s.SetRepo.FindByID(question.SetID)
	if err != nil {
		return nil, err
	}
	if set.OwnerID != callerID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	hasCorrect := false
	for _, opt := range req.Options {
		if opt.IsCorrect {
			hasCorrect = true
			break
		}
	}
	if !hasCorrect {
		return nil, errors.New("question must have at least one correct option")
	}

	question.Prompt = req.Prompt
	question.Attachment = req.Attachment
	question.Level = req.Level
	if req.Position != 0 {
		question.Position = req.Position
	}
	question.Options = nil
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.Option{
			QuestionID: question.ID,
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
		})
	}

	if err := s.SetRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionSetService) DeleteQuestion(questionID, callerID uint, isAdmin bool) error {
	question, err := s.SetRepo.FindQuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionNotFound
	}
	if err != nil {
		return err
	}

	set, err := s.SetRepo.FindByID(question.SetID)
	if err != nil {
		return err
	}
	if set.OwnerID != callerID && !isAdmin {
		return util.ErrPermissionDenied
	}

	return s.SetRepo.DeleteQuestion(questionID)
}
