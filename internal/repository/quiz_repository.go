package repository

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// CreateQuizWithQuestions stores the quiz and its questions atomically.
// Question positions follow slice order.
func (r *QuizRepository) CreateQuizWithQuestions(ctx context.Context, quiz *model.Quiz, questions []model.QuizQuestion) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			questions[i].Position = i
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *QuizRepository) FindQuizByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListQuestions returns questions in a stable order: explicit position,
// then creation time, then id.
func (r *QuizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("position asc, created_at asc, id asc").
		Find(&qs).Error
	return qs, err
}

type QuizListRow struct {
	model.Quiz
	QuestionCount int `json:"questionCount"`
}

func (r *QuizRepository) ListQuizzes(ctx context.Context) ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.WithContext(ctx).Table("quizzes q").
		Select("q.*, (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id) AS question_count").
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// FindAttempt returns the user's attempt for the quiz with its answers, or
// nil when there is none.
func (r *QuizRepository) FindAttempt(ctx context.Context, userID uint, quizID string) (*model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at asc").
		Limit(1).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, nil
	}
	return &attempts[0], nil
}

func (r *QuizRepository) ListAttemptsByUser(ctx context.Context, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Find(&attempts).Error
	return attempts, err
}

// CreateAttempt inserts the scored attempt and all of its answer records in
// a single transaction. A second attempt for the same user and quiz fails
// with util.ErrQuizAlreadyAttempted.
func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt, answers []model.QuizAnswer) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if attempt.CompletedAt.IsZero() {
			attempt.CompletedAt = time.Now()
		}
		if err := tx.Omit("Answers").Create(attempt).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].QuizAttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return util.ErrQuizAlreadyAttempted
		}
		return fmt.Errorf("create quiz attempt: %w", err)
	}
	attempt.Answers = answers
	return nil
}

type QuizAttemptRow struct {
	model.QuizAttempt
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

func (r *QuizRepository) ListAttemptsForQuiz(ctx context.Context, quizID string, page, limit int) ([]QuizAttemptRow, int64, error) {
	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).Table("quiz_attempts a").
			Joins("JOIN profiles u ON a.user_id = u.id").
			Where("a.quiz_id = ?", quizID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []QuizAttemptRow
	offset := (page - 1) * limit
	err := base().Select("a.*, u.full_name AS user_name, u.email AS user_email").
		Order("a.completed_at desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

func (r *QuizRepository) CountQuizzes(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Quiz{}).Count(&n).Error
	return n, err
}

func (r *QuizRepository) CountAttempts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).Count(&n).Error
	return n, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
