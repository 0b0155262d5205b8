package service

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/logger"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ContentService struct {
	Repo    *repository.ContentRepository
	Storage *StorageService
	Cfg     *config.Config
}

func NewContentService(repo *repository.ContentRepository, storage *StorageService, cfg *config.Config) *ContentService {
	return &ContentService{
		Repo:    repo,
		Storage: storage,
		Cfg:     cfg,
	}
}

var (
	bookMimeTypes  = []string{util.MimePDF, util.MimeEPUB, util.MimeZip, util.MimeOctetStream, "text/plain"}
	imageMimeTypes = []string{util.MimeImage}
	videoMimeTypes = []string{util.MimeVideo}
)

type CourseReq struct {
	Title       string `form:"title" json:"title" binding:"required,max=255"`
	Subject     string `form:"subject" json:"subject" binding:"max=100"`
	Description string `form:"description" json:"description"`
}

type BookReq struct {
	Title       string `form:"title" binding:"required,max=255"`
	Author      string `form:"author" binding:"max=255"`
	Subject     string `form:"subject" binding:"max=100"`
	Description string `form:"description"`
	Tags        string `form:"tags"`
}

type VideoReq struct {
	Title       string `form:"title" binding:"required,max=255"`
	Subject     string `form:"subject" binding:"max=100"`
	Description string `form:"description"`
	VideoURL    string `form:"videoUrl" binding:"omitempty,url"`
	Tags        string `form:"tags"`
}

type CourseItemReq struct {
	ContentType string `json:"contentType" binding:"required"`
	ContentID   string `json:"contentId" binding:"required"`
}

// splitTags turns "go, web,,db" into [go web db].
func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// uploadImage stores an optional image; a nil header yields an empty URL.
func (s *ContentService) uploadImage(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	if !util.HasExtension(fh.Filename, util.AllowedImageExtensions) {
		return "", fmt.Errorf("%w: %s", util.ErrInvalidFileType, fh.Filename)
	}
	url, _, err := s.Storage.UploadMultipart(ctx, folder, fh, imageMimeTypes)
	return url, err
}

func (s *ContentService) CreateCourse(ctx context.Context, userID uint, req *CourseReq, thumbnail *multipart.FileHeader) (*model.Course, error) {
	thumbURL, err := s.uploadImage(ctx, "courses", thumbnail)
	if err != nil {
		return nil, err
	}
	course := &model.Course{
		Title:        strings.TrimSpace(req.Title),
		Subject:      req.Subject,
		Description:  req.Description,
		ThumbnailURL: thumbURL,
		CreatedBy:    userID,
	}
	if err := s.Repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) UploadBook(ctx context.Context, userID uint, req *BookReq, file, cover *multipart.FileHeader) (*model.Book, error) {
	if file == nil {
		return nil, util.ErrFileRequired
	}
	if !util.HasExtension(file.Filename, util.AllowedBookExtensions) {
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidFileType, file.Filename)
	}
	fileURL, _, err := s.Storage.UploadMultipart(ctx, "books", file, bookMimeTypes)
	if err != nil {
		return nil, err
	}
	coverURL, err := s.uploadImage(ctx, "book-covers", cover)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:         strings.TrimSpace(req.Title),
		Author:        req.Author,
		Subject:       req.Subject,
		Description:   req.Description,
		FileURL:       fileURL,
		CoverImageURL: coverURL,
		Tags:          splitTags(req.Tags),
		UploadedBy:    userID,
	}
	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UploadVideo accepts either an uploaded file or an external URL. For an
// uploaded file without a thumbnail, one frame is grabbed with ffmpeg and
// the duration is probed; both are best effort.
func (s *ContentService) UploadVideo(ctx context.Context, userID uint, req *VideoReq, file, thumbnail *multipart.FileHeader) (*model.Video, error) {
	if file == nil && strings.TrimSpace(req.VideoURL) == "" {
		return nil, util.NewValidationError("video", "either a video file or a video URL is required")
	}

	video := &model.Video{
		Title:       strings.TrimSpace(req.Title),
		Subject:     req.Subject,
		Description: req.Description,
		VideoURL:    strings.TrimSpace(req.VideoURL),
		Tags:        splitTags(req.Tags),
		UploadedBy:  userID,
	}

	thumbURL, err := s.uploadImage(ctx, "thumbnails", thumbnail)
	if err != nil {
		return nil, err
	}
	video.ThumbnailURL = thumbURL

	if file != nil {
		if err := s.storeVideoFile(ctx, file, video); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.CreateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *ContentService) storeVideoFile(ctx context.Context, file *multipart.FileHeader, video *model.Video) error {
	if !util.HasExtension(file.Filename, util.AllowedVideoExtensions) {
		return fmt.Errorf("%w: %s", util.ErrInvalidFileType, file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, videoMimeTypes)
	if err != nil {
		return err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}

	// ffmpeg needs a real path, so the upload goes through a temp file
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return err
	}
	videoPath := filepath.Join(tempDir, fmt.Sprintf("video_%d%s", time.Now().UnixNano(), strings.ToLower(filepath.Ext(file.Filename))))
	defer os.Remove(videoPath)

	dst, err := os.Create(videoPath)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	dst.Close()
	if err != nil {
		return err
	}

	videoURL, err := s.Storage.UploadFile(ctx, util.ObjectName("videos", file.Filename), videoPath, mimeType)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	video.VideoURL = videoURL

	if video.ThumbnailURL == "" {
		thumbPath := filepath.Join(tempDir, fmt.Sprintf("thumb_%d.jpg", time.Now().UnixNano()))
		defer os.Remove(thumbPath)
		if err := util.GenerateThumbnail(videoPath, thumbPath, "3"); err != nil {
			logger.Log.Warn("generate video thumbnail", zap.String("file", file.Filename), zap.Error(err))
		} else if url, err := s.Storage.UploadFile(ctx, util.ObjectName("thumbnails", "thumb.jpg"), thumbPath, "image/jpeg"); err != nil {
			logger.Log.Warn("upload video thumbnail", zap.Error(err))
		} else {
			video.ThumbnailURL = url
		}
	}

	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("probe video", zap.String("file", file.Filename), zap.Error(err))
	} else {
		minutes := info.DurationMinutes()
		video.DurationMinutes = &minutes
	}
	return nil
}

func (s *ContentService) ListCourses(ctx context.Context, subject string) ([]model.Course, error) {
	return s.Repo.ListCourses(ctx, subject)
}

func (s *ContentService) ListBooks(ctx context.Context, subject string) ([]model.Book, error) {
	return s.Repo.ListBooks(ctx, subject)
}

func (s *ContentService) ListVideos(ctx context.Context, subject string) ([]model.Video, error) {
	return s.Repo.ListVideos(ctx, subject)
}

type CourseItem struct {
	model.CourseContent
	Title string `json:"title"`
}

type CourseDetail struct {
	model.Course
	Items []CourseItem `json:"items"`
}

func (s *ContentService) GetCourse(ctx context.Context, id string) (*CourseDetail, error) {
	course, err := s.Repo.FindCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListCourseContent(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: *course, Items: make([]CourseItem, len(items))}
	for i, item := range items {
		detail.Items[i] = CourseItem{CourseContent: item}
		title, err := s.Repo.ResolveTitle(ctx, item.Ref())
		if err != nil {
			logger.Log.Warn("course item unresolved", zap.String("item", item.Ref().String()), zap.Error(err))
			continue
		}
		detail.Items[i].Title = title
	}
	return detail, nil
}

// AddCourseItem appends a book or video to the end of a course.
func (s *ContentService) AddCourseItem(ctx context.Context, courseID string, req *CourseItemReq) (*model.CourseContent, error) {
	if _, err := s.Repo.FindCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	ref, err := model.ParseContentRef(req.ContentType, req.ContentID)
	if err != nil {
		return nil, util.NewValidationError("contentType", err.Error())
	}
	if ref.Type == model.ContentCourse {
		return nil, util.NewValidationError("contentType", "a course item must be a book or a video")
	}
	if _, err := s.Repo.ResolveTitle(ctx, ref); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			return nil, util.NewValidationError("contentId", "referenced "+string(ref.Type)+" does not exist")
		}
		return nil, err
	}

	item := &model.CourseContent{CourseID: courseID, ContentType: ref.Type, ContentID: ref.ID}
	if err := s.Repo.AddCourseContent(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
