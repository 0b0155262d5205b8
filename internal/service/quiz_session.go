package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"fmt"
	"time"
)

type AttemptState string

const (
	StateAnswering        AttemptState = "answering"
	StateSubmitting       AttemptState = "submitting"
	StateCompleted        AttemptState = "completed"
	StateSubmissionFailed AttemptState = "submission_failed"
)

// AttemptWriter persists a scored attempt together with its answer records.
type AttemptWriter interface {
	CreateAttempt(ctx context.Context, attempt *model.QuizAttempt, answers []model.QuizAnswer) error
}

// AttemptResult is everything the results review needs; no further queries.
type AttemptResult struct {
	Attempt model.QuizAttempt  `json:"attempt"`
	Answers []model.QuizAnswer `json:"answers"`
}

// AttemptSession is one user taking one quiz. It is not safe for
// concurrent use; each session belongs to a single user.
type AttemptSession struct {
	UserID    uint                 `json:"userId"`
	QuizID    string               `json:"quizId"`
	Questions []model.QuizQuestion `json:"questions"`
	Current   int                  `json:"current"`
	Answers   map[string]int       `json:"answers"`
	State     AttemptState         `json:"state"`
	LastError string               `json:"lastError,omitempty"`
	StartedAt time.Time            `json:"startedAt"`

	Result *AttemptResult `json:"-"`
}

func NewAttemptSession(userID uint, quizID string, questions []model.QuizQuestion) (*AttemptSession, error) {
	if len(questions) == 0 {
		return nil, util.ErrQuizHasNoQuestions
	}
	return &AttemptSession{
		UserID:    userID,
		QuizID:    quizID,
		Questions: questions,
		Current:   0,
		Answers:   make(map[string]int, len(questions)),
		State:     StateAnswering,
		StartedAt: time.Now(),
	}, nil
}

// resume puts a failed submission back into answering; the answer map was
// never touched by the failed write.
func (s *AttemptSession) resume() error {
	switch s.State {
	case StateCompleted:
		return util.ErrAttemptCompleted
	case StateSubmitting:
		return util.ErrSubmissionInProgress
	case StateSubmissionFailed:
		s.State = StateAnswering
		s.LastError = ""
	}
	if s.Answers == nil {
		s.Answers = make(map[string]int, len(s.Questions))
	}
	return nil
}

func (s *AttemptSession) question(id string) (model.QuizQuestion, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.QuizQuestion{}, false
}

func (s *AttemptSession) LastIndex() int {
	return len(s.Questions) - 1
}

func (s *AttemptSession) CurrentQuestion() model.QuizQuestion {
	return s.Questions[s.Current]
}

// AnsweredCount counts questions of this quiz that have a selection.
func (s *AttemptSession) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.Answers[q.ID]; ok {
			n++
		}
	}
	return n
}

// SelectAnswer records a pick for any question of the quiz, replacing an
// earlier pick. The current position does not move.
func (s *AttemptSession) SelectAnswer(questionID string, optionIndex int) error {
	if err := s.resume(); err != nil {
		return err
	}
	q, ok := s.question(questionID)
	if !ok {
		return util.ErrQuestionNotInQuiz
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return util.ErrOptionOutOfRange
	}
	s.Answers[questionID] = optionIndex
	return nil
}

func (s *AttemptSession) Advance() error {
	if err := s.resume(); err != nil {
		return err
	}
	if s.Current >= s.LastIndex() {
		return util.ErrNoNextQuestion
	}
	s.Current++
	return nil
}

func (s *AttemptSession) Retreat() error {
	if err := s.resume(); err != nil {
		return err
	}
	if s.Current <= 0 {
		return util.ErrNoPreviousQuestion
	}
	s.Current--
	return nil
}

// Submit scores the session and hands attempt plus answers to w in one call.
// An incomplete answer map is rejected before anything is written. A failed
// write leaves the session in StateSubmissionFailed with its answers intact
// so Submit can be called again.
func (s *AttemptSession) Submit(ctx context.Context, w AttemptWriter) (*AttemptResult, error) {
	if err := s.resume(); err != nil {
		return nil, err
	}
	if s.AnsweredCount() < len(s.Questions) {
		return nil, util.ErrIncompleteAnswers
	}

	s.State = StateSubmitting
	score, records := ScoreAnswers(s.Questions, s.Answers)
	attempt := &model.QuizAttempt{
		UserID:         s.UserID,
		QuizID:         s.QuizID,
		Score:          score,
		TotalQuestions: len(s.Questions),
		CompletedAt:    time.Now(),
	}

	if err := w.CreateAttempt(ctx, attempt, records); err != nil {
		s.State = StateSubmissionFailed
		s.LastError = err.Error()
		return nil, fmt.Errorf("submit attempt: %w", err)
	}

	s.State = StateCompleted
	s.Result = &AttemptResult{Attempt: *attempt, Answers: records}
	s.Result.Attempt.Answers = nil
	s.Answers = nil
	return s.Result, nil
}

// ScoreAnswers compares selected and correct option indices, never option
// text. Records follow question order.
func ScoreAnswers(questions []model.QuizQuestion, answers map[string]int) (int, []model.QuizAnswer) {
	score := 0
	records := make([]model.QuizAnswer, 0, len(questions))
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		isCorrect := selected == q.CorrectAnswer
		if isCorrect {
			score++
		}
		records = append(records, model.QuizAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: selected,
			IsCorrect:      isCorrect,
		})
	}
	return score, records
}
