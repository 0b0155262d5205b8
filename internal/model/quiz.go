package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ContentType ContentType `gorm:"size:20;not null" json:"contentType"`
	ContentID   string      `gorm:"type:varchar(36);not null;index" json:"contentId"`
	CreatedBy   uint        `gorm:"index" json:"createdBy"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q Quiz) Ref() ContentRef {
	return ContentRef{Type: q.ContentType, ID: q.ContentID}
}

// QuizQuestion keeps the correct option as a zero-based index into Options.
type QuizQuestion struct {
	UUIDBase
	QuizID        string                      `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"correctAnswer"`
	Position      int                         `gorm:"not null;default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAttempt is a user's single completed submission of a quiz.
type QuizAttempt struct {
	UUIDBase
	UserID         uint         `gorm:"not null;uniqueIndex:idx_quiz_attempt_user_quiz" json:"userId"`
	QuizID         string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_quiz_attempt_user_quiz" json:"quizId"`
	Score          int          `gorm:"not null" json:"score"`
	TotalQuestions int          `gorm:"not null" json:"totalQuestions"`
	CompletedAt    time.Time    `gorm:"not null" json:"completedAt"`
	Answers        []QuizAnswer `gorm:"foreignKey:QuizAttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizAnswer is written once, together with its attempt.
type QuizAnswer struct {
	UUIDBase
	QuizAttemptID  string `gorm:"index;type:varchar(36);not null" json:"quizAttemptId"`
	QuestionID     string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	SelectedAnswer int    `gorm:"not null" json:"selectedAnswer"`
	IsCorrect      bool   `gorm:"not null" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
