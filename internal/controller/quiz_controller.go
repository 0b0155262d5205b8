package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// ListQuizzes godoc
// @Summary List quizzes, newest first, with the caller's completion badge
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.QuizSummary}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	list, err := c.QuizService.ListQuizzes(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetQuiz godoc
// @Summary Load a quiz with its questions, or the review when already taken
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 404 {object} util.Response "quiz not found"
// @Failure 422 {object} util.Response "quiz has no questions"
// @Router /api/quizzes/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	view, err := c.QuizService.LoadQuiz(ctx.Request.Context(), ctx.Param("quizId"), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// StartSession godoc
// @Summary Start or resume answering a quiz
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 409 {object} util.Response "quiz already attempted"
// @Router /api/quizzes/{quizId}/session [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	view, err := c.QuizService.StartSession(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GetSession godoc
// @Summary Current state of the caller's quiz session
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response "no session"
// @Router /api/quizzes/{quizId}/session [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	view, err := c.QuizService.GetSession(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type SelectAnswerRequest struct {
	QuestionID  string `json:"questionId" binding:"required"`
	OptionIndex *int   `json:"optionIndex" binding:"required"`
}

// SelectAnswer godoc
// @Summary Pick an option for any question of the quiz
// @Tags Quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Param body body SelectAnswerRequest true "selection"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 422 {object} util.Response "unknown question or option"
// @Router /api/quizzes/{quizId}/session/answers [put]
func (c *QuizController) SelectAnswer(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req SelectAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	view, err := c.QuizService.SelectAnswer(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"), req.QuestionID, *req.OptionIndex)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// NextQuestion godoc
// @Summary Move to the next question
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "already at the last question"
// @Router /api/quizzes/{quizId}/session/next [post]
func (c *QuizController) NextQuestion(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	view, err := c.QuizService.Advance(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// PreviousQuestion godoc
// @Summary Move to the previous question
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "already at the first question"
// @Router /api/quizzes/{quizId}/session/previous [post]
func (c *QuizController) PreviousQuestion(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	view, err := c.QuizService.Retreat(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SubmitQuiz godoc
// @Summary Submit all answers and receive the review
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 201 {object} util.Response{data=service.QuizReview}
// @Failure 409 {object} util.Response "quiz already attempted"
// @Failure 422 {object} util.Response "please answer all questions"
// @Failure 500 {object} util.Response "submission failed, answers kept for retry"
// @Router /api/quizzes/{quizId}/session/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	review, err := c.QuizService.SubmitSession(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"))
	if err != nil {
		if isDomainError(err) {
			respondError(ctx, err)
			return
		}
		// already logged by the service; the session is kept for a retry
		util.Error(ctx, http.StatusInternalServerError, "Failed to submit quiz, please try again")
		return
	}
	util.Created(ctx, review)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		util.ErrIncompleteAnswers,
		util.ErrQuizAlreadyAttempted,
		util.ErrAttemptCompleted,
		util.ErrSubmissionInProgress,
		util.ErrSessionNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// AbandonSession godoc
// @Summary Discard the caller's in-progress session
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{quizId}/session [delete]
func (c *QuizController) AbandonSession(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.QuizService.AbandonSession(ctx.Request.Context(), claims.UserID, ctx.Param("quizId")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetResult godoc
// @Summary Review of the caller's completed attempt
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Success 200 {object} util.Response{data=service.QuizReview}
// @Failure 404 {object} util.Response "no attempt"
// @Router /api/quizzes/{quizId}/result [get]
func (c *QuizController) GetResult(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	review, err := c.QuizService.GetResult(ctx.Request.Context(), claims.UserID, ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// CreateQuiz godoc
// @Summary Create a quiz for a course, book or video
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuizReq true "quiz with questions"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 422 {object} util.Response "validation failed"
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.CreateQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz, err := c.QuizService.CreateQuiz(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// ListAttempts godoc
// @Summary Attempts submitted for a quiz
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "quiz id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=service.AttemptList}
// @Router /api/admin/quizzes/{quizId}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	list, err := c.QuizService.ListAttempts(ctx.Request.Context(), ctx.Param("quizId"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
