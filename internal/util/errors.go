package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("course module not found")
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrVocabularyNotFound  = errors.New("vocabulary entry not found")
	ErrLiveSessionNotFound = errors.New("live session not found")
	ErrSessionNotFound     = errors.New("tryout session not found")
	ErrParticipantNotFound = errors.New("tryout participant not found")
	ErrNotEnrolled         = errors.New("user not enrolled in course")
	ErrSessionNotYetOpen   = errors.New("tryout session not yet open")
	ErrSessionClosed       = errors.New("tryout session no longer open")
	ErrAlreadySubmitted    = errors.New("tryout already submitted")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	ErrInvalidActivityType = errors.New("invalid activity type")
)
