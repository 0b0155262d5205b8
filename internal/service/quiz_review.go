package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"time"
)

type OptionHighlight string

const (
	HighlightCorrect       OptionHighlight = "correct"
	HighlightIncorrectPick OptionHighlight = "incorrect_pick"
	HighlightNeutral       OptionHighlight = "neutral"
)

type ReviewOption struct {
	Index     int             `json:"index"`
	Text      string          `json:"text"`
	Highlight OptionHighlight `json:"highlight"`
}

type QuestionReview struct {
	QuestionID     string         `json:"questionId"`
	Number         int            `json:"number"`
	Question       string         `json:"question"`
	Options        []ReviewOption `json:"options"`
	CorrectAnswer  int            `json:"correctAnswer"`
	SelectedAnswer *int           `json:"selectedAnswer"`
	Answered       bool           `json:"answered"`
	IsCorrect      bool           `json:"isCorrect"`
}

type QuizReview struct {
	AttemptID   string           `json:"attemptId"`
	QuizID      string           `json:"quizId"`
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	Percentage  int              `json:"percentage"`
	CompletedAt time.Time        `json:"completedAt"`
	Questions   []QuestionReview `json:"questions"`
}

// HighlightOption decides how option index is shown for a question given the
// stored answer (nil when the question has no answer record).
func HighlightOption(q model.QuizQuestion, ans *model.QuizAnswer, index int) OptionHighlight {
	if index == q.CorrectAnswer {
		return HighlightCorrect
	}
	if ans != nil && index == ans.SelectedAnswer {
		return HighlightIncorrectPick
	}
	return HighlightNeutral
}

func ReviewQuestion(number int, q model.QuizQuestion, ans *model.QuizAnswer) QuestionReview {
	qr := QuestionReview{
		QuestionID:    q.ID,
		Number:        number,
		Question:      q.Question,
		CorrectAnswer: q.CorrectAnswer,
		Options:       make([]ReviewOption, len(q.Options)),
	}
	for i, text := range q.Options {
		qr.Options[i] = ReviewOption{Index: i, Text: text, Highlight: HighlightOption(q, ans, i)}
	}
	if ans != nil {
		selected := ans.SelectedAnswer
		qr.SelectedAnswer = &selected
		qr.Answered = true
		qr.IsCorrect = ans.IsCorrect
	}
	return qr
}

// BuildReview renders a completed attempt question by question. It does no
// I/O.
func BuildReview(questions []model.QuizQuestion, result AttemptResult) QuizReview {
	byQuestion := make(map[string]*model.QuizAnswer, len(result.Answers))
	for i := range result.Answers {
		byQuestion[result.Answers[i].QuestionID] = &result.Answers[i]
	}

	review := QuizReview{
		AttemptID:   result.Attempt.ID,
		QuizID:      result.Attempt.QuizID,
		Score:       result.Attempt.Score,
		Total:       result.Attempt.TotalQuestions,
		Percentage:  util.Percentage(result.Attempt.Score, result.Attempt.TotalQuestions),
		CompletedAt: result.Attempt.CompletedAt,
		Questions:   make([]QuestionReview, len(questions)),
	}
	for i, q := range questions {
		review.Questions[i] = ReviewQuestion(i+1, q, byQuestion[q.ID])
	}
	return review
}
