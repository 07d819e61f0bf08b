package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrAssessmentCompleted   = errors.New("assessment already completed")
	ErrAssessmentNotComplete = errors.New("assessment not completed")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrScoreOutOfRange       = errors.New("score must be between 1 and 10")
	ErrGenerationInFlight    = errors.New("insight generation already in progress")
	ErrCategoryNotFound      = errors.New("category not found")
)
