package repository

import (
	"context"
	"database/sql"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *ContentRepository) CreateBook(ctx context.Context, book *model.Book) error {
	return r.DB.WithContext(ctx).Create(book).Error
}

func (r *ContentRepository) CreateVideo(ctx context.Context, video *model.Video) error {
	return r.DB.WithContext(ctx).Create(video).Error
}

func bySubject(db *gorm.DB, subject string) *gorm.DB {
	if subject != "" {
		db = db.Where("subject = ?", subject)
	}
	return db.Order("created_at desc")
}

func (r *ContentRepository) ListCourses(ctx context.Context, subject string) ([]model.Course, error) {
	var courses []model.Course
	err := bySubject(r.DB.WithContext(ctx), subject).Find(&courses).Error
	return courses, err
}

func (r *ContentRepository) ListBooks(ctx context.Context, subject string) ([]model.Book, error) {
	var books []model.Book
	err := bySubject(r.DB.WithContext(ctx), subject).Find(&books).Error
	return books, err
}

func (r *ContentRepository) ListVideos(ctx context.Context, subject string) ([]model.Video, error) {
	var videos []model.Video
	err := bySubject(r.DB.WithContext(ctx), subject).Find(&videos).Error
	return videos, err
}

func (r *ContentRepository) FindCourseByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// AddCourseContent appends an item at the end of the course outline.
func (r *ContentRepository) AddCourseContent(ctx context.Context, item *model.CourseContent) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder sql.NullInt64
		if err := tx.Model(&model.CourseContent{}).
			Where("course_id = ?", item.CourseID).
			Select("MAX(order_index)").
			Row().Scan(&maxOrder); err != nil {
			return err
		}
		item.OrderIndex = 0
		if maxOrder.Valid {
			item.OrderIndex = int(maxOrder.Int64) + 1
		}
		return tx.Create(item).Error
	})
}

func (r *ContentRepository) ListCourseContent(ctx context.Context, courseID string) ([]model.CourseContent, error) {
	var items []model.CourseContent
	err := r.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index asc").
		Find(&items).Error
	return items, err
}

type contentTitle struct {
	ID    string
	Title string
}

// ResolveTitle looks the reference up in the table its tag names.
func (r *ContentRepository) ResolveTitle(ctx context.Context, ref model.ContentRef) (string, error) {
	table := ref.TableName()
	if table == "" {
		return "", model.ErrInvalidContentType
	}
	var row contentTitle
	res := r.DB.WithContext(ctx).Table(table).Select("id, title").Where("id = ?", ref.ID).Limit(1).Scan(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", util.ErrContentNotFound
	}
	return row.Title, nil
}

type ContentCounts struct {
	Courses int64 `json:"totalCourses"`
	Books   int64 `json:"totalBooks"`
	Videos  int64 `json:"totalVideos"`
}

func (r *ContentRepository) Counts(ctx context.Context) (ContentCounts, error) {
	var c ContentCounts
	db := r.DB.WithContext(ctx)
	if err := db.Model(&model.Course{}).Count(&c.Courses).Error; err != nil {
		return c, err
	}
	if err := db.Model(&model.Book{}).Count(&c.Books).Error; err != nil {
		return c, err
	}
	if err := db.Model(&model.Video{}).Count(&c.Videos).Error; err != nil {
		return c, err
	}
	return c, nil
}
