package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"
	"edulearn_backend/pkg/tracing"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type QuizStatus string

const (
	QuizNotStarted QuizStatus = "not_started"
	QuizInProgress QuizStatus = "in_progress"
	QuizCompleted  QuizStatus = "completed"
)

type QuizService struct {
	Repo        *repository.QuizRepository
	ContentRepo *repository.ContentRepository
	Sessions    SessionStore
}

func NewQuizService(repo *repository.QuizRepository, contentRepo *repository.ContentRepository, sessions SessionStore) *QuizService {
	return &QuizService{
		Repo:        repo,
		ContentRepo: contentRepo,
		Sessions:    sessions,
	}
}

type CreateQuestionReq struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required"`
}

type CreateQuizReq struct {
	Title       string              `json:"title" binding:"required,max=255"`
	Description string              `json:"description"`
	ContentType string              `json:"contentType" binding:"required"`
	ContentID   string              `json:"contentId" binding:"required"`
	Questions   []CreateQuestionReq `json:"questions" binding:"required,min=1,dive"`
}

// Validate checks the request independent of the database.
func (r *CreateQuizReq) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return util.NewValidationError("title", "title is required")
	}
	if len(r.Questions) == 0 {
		return util.NewValidationError("questions", "at least one question is required")
	}
	for i, q := range r.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(q.Question) == "" {
			return util.NewValidationError(field, "question text is required")
		}
		if len(q.Options) < 2 {
			return util.NewValidationError(field, "at least two options are required")
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return util.NewValidationError(field, "options must not be empty")
			}
		}
		if q.CorrectAnswer == nil || *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			return util.NewValidationError(field, "correct answer must index one of the options")
		}
	}
	return nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, creatorID uint, req *CreateQuizReq) (*model.Quiz, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ref, err := model.ParseContentRef(req.ContentType, req.ContentID)
	if err != nil {
		return nil, util.NewValidationError("contentType", err.Error())
	}
	if _, err := s.ContentRepo.ResolveTitle(ctx, ref); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			return nil, util.NewValidationError("contentId", "referenced "+string(ref.Type)+" does not exist")
		}
		return nil, err
	}

	quiz := &model.Quiz{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ContentType: ref.Type,
		ContentID:   ref.ID,
		CreatedBy:   creatorID,
	}
	questions := make([]model.QuizQuestion, len(req.Questions))
	for i, q := range req.Questions {
		opts := make([]string, len(q.Options))
		for j, o := range q.Options {
			opts[j] = strings.TrimSpace(o)
		}
		questions[i] = model.QuizQuestion{
			Question:      strings.TrimSpace(q.Question),
			Options:       opts,
			CorrectAnswer: *q.CorrectAnswer,
		}
	}

	if err := s.Repo.CreateQuizWithQuestions(ctx, quiz, questions); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	logger.Log.Info("quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("content", ref.String()),
		zap.Int("questions", len(questions)))
	return quiz, nil
}

// QuizBadge is the completion badge shown next to a quiz in listings.
type QuizBadge struct {
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completedAt"`
}

type QuizSummary struct {
	repository.QuizListRow
	Completed bool       `json:"completed"`
	Badge     *QuizBadge `json:"badge,omitempty"`
}

func (s *QuizService) ListQuizzes(ctx context.Context, userID uint) ([]QuizSummary, error) {
	rows, err := s.Repo.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	attempts, err := s.Repo.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byQuiz := make(map[string]model.QuizAttempt, len(attempts))
	for _, a := range attempts {
		byQuiz[a.QuizID] = a
	}

	out := make([]QuizSummary, len(rows))
	for i, row := range rows {
		out[i] = QuizSummary{QuizListRow: row}
		if a, ok := byQuiz[row.ID]; ok {
			out[i].Completed = true
			out[i].Badge = &QuizBadge{
				Score:       a.Score,
				Total:       a.TotalQuestions,
				Percentage:  util.Percentage(a.Score, a.TotalQuestions),
				CompletedAt: a.CompletedAt,
			}
		}
	}
	return out, nil
}

// StudentQuestion is a question as shown while answering; the correct
// index is left out.
type StudentQuestion struct {
	ID       string   `json:"id"`
	Number   int      `json:"number"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func toStudentQuestion(number int, q model.QuizQuestion) StudentQuestion {
	return StudentQuestion{
		ID:       q.ID,
		Number:   number,
		Question: q.Question,
		Options:  q.Options,
	}
}

type QuizView struct {
	Quiz          model.Quiz        `json:"quiz"`
	ContentTitle  string            `json:"contentTitle"`
	QuestionCount int               `json:"questionCount"`
	Status        QuizStatus        `json:"status"`
	Questions     []StudentQuestion `json:"questions,omitempty"`
	Session       *SessionView      `json:"session,omitempty"`
	Review        *QuizReview       `json:"review,omitempty"`
}

// LoadQuiz fetches a quiz, its ordered questions and the user's attempt.
// A user who already attempted the quiz gets the review instead of the
// questions.
func (s *QuizService) LoadQuiz(ctx context.Context, quizID string, userID uint) (*QuizView, error) {
	quiz, err := s.Repo.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	view := &QuizView{Quiz: *quiz}
	title, err := s.ContentRepo.ResolveTitle(ctx, quiz.Ref())
	if err != nil {
		logger.Log.Warn("quiz content unresolved",
			zap.String("quizID", quiz.ID),
			zap.String("content", quiz.Ref().String()),
			zap.Error(err))
	}
	view.ContentTitle = title

	questions, err := s.Repo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, util.ErrQuizHasNoQuestions
	}
	view.QuestionCount = len(questions)

	attempt, err := s.Repo.FindAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if attempt != nil {
		review := BuildReview(questions, resultFromAttempt(attempt))
		view.Status = QuizCompleted
		view.Review = &review
		return view, nil
	}

	view.Status = QuizNotStarted
	view.Questions = make([]StudentQuestion, len(questions))
	for i, q := range questions {
		view.Questions[i] = toStudentQuestion(i+1, q)
	}

	sess, err := s.Sessions.Get(ctx, userID, quizID)
	switch {
	case err == nil:
		view.Status = QuizInProgress
		view.Session = newSessionView(sess)
	case !errors.Is(err, util.ErrSessionNotFound):
		logger.Log.Warn("quiz session lookup failed", zap.String("quizID", quizID), zap.Error(err))
	}
	return view, nil
}

func resultFromAttempt(a *model.QuizAttempt) AttemptResult {
	answers := a.Answers
	attempt := *a
	attempt.Answers = nil
	return AttemptResult{Attempt: attempt, Answers: answers}
}

type SessionView struct {
	QuizID          string          `json:"quizId"`
	State           AttemptState    `json:"state"`
	CurrentIndex    int             `json:"currentIndex"`
	Total           int             `json:"total"`
	AnsweredCount   int             `json:"answeredCount"`
	Progress        int             `json:"progress"`
	IsFirst         bool            `json:"isFirst"`
	IsLast          bool            `json:"isLast"`
	CanSubmit       bool            `json:"canSubmit"`
	CurrentQuestion StudentQuestion `json:"currentQuestion"`
	SelectedAnswer  *int            `json:"selectedAnswer"`
	Answers         map[string]int  `json:"answers"`
	LastError       string          `json:"lastError,omitempty"`
}

func newSessionView(s *AttemptSession) *SessionView {
	total := len(s.Questions)
	v := &SessionView{
		QuizID:        s.QuizID,
		State:         s.State,
		CurrentIndex:  s.Current,
		Total:         total,
		AnsweredCount: s.AnsweredCount(),
		Progress:      util.Percentage(s.Current+1, total),
		IsFirst:       s.Current == 0,
		IsLast:        s.Current == s.LastIndex(),
		Answers:       s.Answers,
		LastError:     s.LastError,
	}
	v.CanSubmit = v.AnsweredCount == total
	if total > 0 {
		q := s.CurrentQuestion()
		v.CurrentQuestion = toStudentQuestion(s.Current+1, q)
		if sel, ok := s.Answers[q.ID]; ok {
			v.SelectedAnswer = &sel
		}
	}
	return v
}

// StartSession begins answering a quiz, or resumes the session already in
// progress.
func (s *QuizService) StartSession(ctx context.Context, userID uint, quizID string) (*SessionView, error) {
	if _, err := s.Repo.FindQuizByID(ctx, quizID); err != nil {
		return nil, err
	}
	attempt, err := s.Repo.FindAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if attempt != nil {
		return nil, util.ErrQuizAlreadyAttempted
	}

	existing, err := s.Sessions.Get(ctx, userID, quizID)
	if err == nil {
		return newSessionView(existing), nil
	}
	if !errors.Is(err, util.ErrSessionNotFound) {
		return nil, err
	}

	questions, err := s.Repo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	sess, err := NewAttemptSession(userID, quizID, questions)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save quiz session: %w", err)
	}
	return newSessionView(sess), nil
}

func (s *QuizService) GetSession(ctx context.Context, userID uint, quizID string) (*SessionView, error) {
	sess, err := s.Sessions.Get(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	return newSessionView(sess), nil
}

func (s *QuizService) update(ctx context.Context, userID uint, quizID string, fn func(*AttemptSession) error) (*SessionView, error) {
	sess, err := s.Sessions.Get(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save quiz session: %w", err)
	}
	return newSessionView(sess), nil
}

func (s *QuizService) SelectAnswer(ctx context.Context, userID uint, quizID, questionID string, optionIndex int) (*SessionView, error) {
	return s.update(ctx, userID, quizID, func(sess *AttemptSession) error {
		return sess.SelectAnswer(questionID, optionIndex)
	})
}

func (s *QuizService) Advance(ctx context.Context, userID uint, quizID string) (*SessionView, error) {
	return s.update(ctx, userID, quizID, (*AttemptSession).Advance)
}

func (s *QuizService) Retreat(ctx context.Context, userID uint, quizID string) (*SessionView, error) {
	return s.update(ctx, userID, quizID, (*AttemptSession).Retreat)
}

// SubmitSession scores the stored session and persists it. On success the
// session is dropped and the review returned. A failed write keeps the
// session, answers included, so the user can submit again.
func (s *QuizService) SubmitSession(ctx context.Context, userID uint, quizID string) (*QuizReview, error) {
	ctx, span := tracing.Tracer.Start(ctx, "QuizService.SubmitSession")
	defer span.End()
	span.SetAttributes(attribute.String("quiz.id", quizID), attribute.Int64("user.id", int64(userID)))

	sess, err := s.Sessions.Get(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	result, err := sess.Submit(ctx, s.Repo)
	switch {
	case errors.Is(err, util.ErrIncompleteAnswers):
		monitoring.QuizSubmissions.WithLabelValues("incomplete").Inc()
		return nil, err
	case errors.Is(err, util.ErrQuizAlreadyAttempted):
		monitoring.QuizSubmissions.WithLabelValues("duplicate").Inc()
		s.dropSession(ctx, userID, quizID)
		return nil, util.ErrQuizAlreadyAttempted
	case err != nil:
		monitoring.QuizSubmissions.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		logger.Log.Error("quiz submission failed",
			zap.String("quizID", quizID),
			zap.Uint("userID", userID),
			zap.Error(err))
		if sess.State == StateSubmissionFailed {
			if saveErr := s.Sessions.Save(ctx, sess); saveErr != nil {
				logger.Log.Warn("keep failed quiz session", zap.String("quizID", quizID), zap.Error(saveErr))
			}
		}
		return nil, err
	}

	review := BuildReview(sess.Questions, *result)
	monitoring.QuizSubmissions.WithLabelValues("completed").Inc()
	monitoring.QuizScorePercentage.Observe(float64(review.Percentage))
	span.SetAttributes(attribute.Int("quiz.score", review.Score))
	s.dropSession(ctx, userID, quizID)

	logger.Log.Info("quiz submitted",
		zap.String("quizID", quizID),
		zap.Uint("userID", userID),
		zap.Int("score", review.Score),
		zap.Int("total", review.Total))
	return &review, nil
}

func (s *QuizService) dropSession(ctx context.Context, userID uint, quizID string) {
	if err := s.Sessions.Delete(ctx, userID, quizID); err != nil {
		logger.Log.Warn("delete quiz session", zap.String("quizID", quizID), zap.Error(err))
	}
}

func (s *QuizService) AbandonSession(ctx context.Context, userID uint, quizID string) error {
	return s.Sessions.Delete(ctx, userID, quizID)
}

// GetResult renders the user's stored attempt for the quiz.
func (s *QuizService) GetResult(ctx context.Context, userID uint, quizID string) (*QuizReview, error) {
	attempt, err := s.Repo.FindAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotFound
	}
	questions, err := s.Repo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	review := BuildReview(questions, resultFromAttempt(attempt))
	return &review, nil
}

type AttemptList struct {
	Items []repository.QuizAttemptRow `json:"items"`
	Total int64                       `json:"total"`
	Page  int                         `json:"page"`
	Limit int                         `json:"limit"`
}

func (s *QuizService) ListAttempts(ctx context.Context, quizID string, page, limit int) (*AttemptList, error) {
	if _, err := s.Repo.FindQuizByID(ctx, quizID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, total, err := s.Repo.ListAttemptsForQuiz(ctx, quizID, page, limit)
	if err != nil {
		return nil, err
	}
	return &AttemptList{Items: rows, Total: total, Page: page, Limit: limit}, nil
}
