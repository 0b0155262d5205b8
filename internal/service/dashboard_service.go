package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"time"
)

type DashboardService struct {
	ContentRepo  *repository.ContentRepository
	QuizRepo     *repository.QuizRepository
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
}

func NewDashboardService(
	contentRepo *repository.ContentRepository,
	quizRepo *repository.QuizRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
) *DashboardService {
	return &DashboardService{
		ContentRepo:  contentRepo,
		QuizRepo:     quizRepo,
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
	}
}

type StudentDashboard struct {
	repository.ContentCounts
	CompletedCourses      int64 `json:"completedCourses"`
	CourseCompletion      int   `json:"courseCompletion"`
	QuizzesTaken          int   `json:"quizzesTaken"`
	AverageQuizPercentage int   `json:"averageQuizPercentage"`
}

func (s *DashboardService) Student(ctx context.Context, userID uint) (*StudentDashboard, error) {
	counts, err := s.ContentRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompleted(ctx, userID, model.ContentCourse)
	if err != nil {
		return nil, err
	}
	attempts, err := s.QuizRepo.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &StudentDashboard{
		ContentCounts:    counts,
		CompletedCourses: completed,
		CourseCompletion: util.Percentage(int(completed), int(counts.Courses)),
		QuizzesTaken:     len(attempts),
	}
	if len(attempts) > 0 {
		sum := 0
		for _, a := range attempts {
			sum += util.Percentage(a.Score, a.TotalQuestions)
		}
		d.AverageQuizPercentage = util.Percentage(sum, len(attempts)*100)
	}
	return d, nil
}

type AdminDashboard struct {
	repository.ContentCounts
	TotalStudents int64     `json:"totalStudents"`
	TotalQuizzes  int64     `json:"totalQuizzes"`
	TotalAttempts int64     `json:"totalAttempts"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	counts, err := s.ContentRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.UserRepo.CountByRole(ctx, model.Student)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.CountQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	attempts, err := s.QuizRepo.CountAttempts(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminDashboard{
		ContentCounts: counts,
		TotalStudents: students,
		TotalQuizzes:  quizzes,
		TotalAttempts: attempts,
		GeneratedAt:   time.Now(),
	}, nil
}
