package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// formFile returns the uploaded file for field, or nil when none was sent.
func formFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

// ListCourses godoc
// @Summary List courses
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param subject query string false "subject filter"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses(ctx.Request.Context(), ctx.Query("subject"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Course with its ordered items
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	detail, err := c.ContentService.GetCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// ListBooks godoc
// @Summary List books
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param subject query string false "subject filter"
// @Success 200 {object} util.Response{data=[]model.Book}
// @Router /api/books [get]
func (c *ContentController) ListBooks(ctx *gin.Context) {
	books, err := c.ContentService.ListBooks(ctx.Request.Context(), ctx.Query("subject"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, books)
}

// ListVideos godoc
// @Summary List videos
// @Tags Content
// @Produce json
// @Security ApiKeyAuth
// @Param subject query string false "subject filter"
// @Success 200 {object} util.Response{data=[]model.Video}
// @Router /api/videos [get]
func (c *ContentController) ListVideos(ctx *gin.Context) {
	videos, err := c.ContentService.ListVideos(ctx.Request.Context(), ctx.Query("subject"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "title"
// @Param subject formData string false "subject"
// @Param description formData string false "description"
// @Param thumbnail formData file false "thumbnail image"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.CourseReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	thumb, err := formFile(ctx, "thumbnail")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.ContentService.CreateCourse(ctx.Request.Context(), claims.UserID, &req, thumb)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// AddCourseItem godoc
// @Summary Append a book or video to a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param body body service.CourseItemReq true "content reference"
// @Success 201 {object} util.Response{data=model.CourseContent}
// @Router /api/admin/courses/{id}/items [post]
func (c *ContentController) AddCourseItem(ctx *gin.Context) {
	var req service.CourseItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.ContentService.AddCourseItem(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// UploadBook godoc
// @Summary Upload a book
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "title"
// @Param author formData string false "author"
// @Param subject formData string false "subject"
// @Param description formData string false "description"
// @Param tags formData string false "comma separated tags"
// @Param file formData file true "book file"
// @Param cover formData file false "cover image"
// @Success 201 {object} util.Response{data=model.Book}
// @Failure 422 {object} util.Response "missing or invalid file"
// @Router /api/admin/books [post]
func (c *ContentController) UploadBook(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.BookReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	file, err := formFile(ctx, "file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	cover, err := formFile(ctx, "cover")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	book, err := c.ContentService.UploadBook(ctx.Request.Context(), claims.UserID, &req, file, cover)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, book)
}

// UploadVideo godoc
// @Summary Upload a video file or register an external video URL
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "title"
// @Param subject formData string false "subject"
// @Param description formData string false "description"
// @Param videoUrl formData string false "external video URL"
// @Param tags formData string false "comma separated tags"
// @Param file formData file false "video file"
// @Param thumbnail formData file false "thumbnail image"
// @Success 201 {object} util.Response{data=model.Video}
// @Router /api/admin/videos [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.VideoReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	file, err := formFile(ctx, "file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	thumb, err := formFile(ctx, "thumbnail")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	video, err := c.ContentService.UploadVideo(ctx.Request.Context(), claims.UserID, &req, file, thumb)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, video)
}
