package controller

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP status codes. Anything it does
// not recognise is logged and answered with 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case util.IsValidationError(err),
		errors.Is(err, util.ErrIncompleteAnswers),
		errors.Is(err, util.ErrQuestionNotInQuiz),
		errors.Is(err, util.ErrOptionOutOfRange),
		errors.Is(err, util.ErrInvalidFileType),
		errors.Is(err, util.ErrFileRequired),
		errors.Is(err, model.ErrInvalidContentType):
		util.Unprocessable(ctx, err.Error())
	case errors.Is(err, util.ErrNoNextQuestion),
		errors.Is(err, util.ErrNoPreviousQuestion):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrContentNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrQuizHasNoQuestions):
		util.Unprocessable(ctx, err.Error())
	case errors.Is(err, util.ErrQuizAlreadyAttempted),
		errors.Is(err, util.ErrAttemptCompleted),
		errors.Is(err, util.ErrSubmissionInProgress),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrUnauthorized):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// currentUser returns the JWT claims, answering 401 when they are missing.
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}
