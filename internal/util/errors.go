package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrContentNotFound = errors.New("content not found")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileRequired    = errors.New("file is required")

	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizHasNoQuestions   = errors.New("quiz has no questions")
	ErrQuizAlreadyAttempted = errors.New("quiz already attempted")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrQuestionNotInQuiz    = errors.New("question does not belong to this quiz")
	ErrOptionOutOfRange     = errors.New("option index out of range")
	ErrNoNextQuestion       = errors.New("already at the last question")
	ErrNoPreviousQuestion   = errors.New("already at the first question")
	ErrIncompleteAnswers    = errors.New("please answer all questions")
	ErrAttemptCompleted     = errors.New("attempt already completed")
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrAttemptNotFound      = errors.New("quiz attempt not found")
)

// ValidationError reports bad input that the caller can fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
