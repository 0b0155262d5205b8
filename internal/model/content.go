package model

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentCourse ContentType = "course"
	ContentBook   ContentType = "book"
	ContentVideo  ContentType = "video"
)

var ErrInvalidContentType = errors.New("invalid content type")

// ContentRef points at exactly one course, book or video. The tag decides
// which table ID belongs to.
type ContentRef struct {
	Type ContentType `json:"contentType"`
	ID   string      `json:"contentId"`
}

func CourseRef(id string) ContentRef { return ContentRef{Type: ContentCourse, ID: id} }
func BookRef(id string) ContentRef   { return ContentRef{Type: ContentBook, ID: id} }
func VideoRef(id string) ContentRef  { return ContentRef{Type: ContentVideo, ID: id} }

// ParseContentRef validates a loose (type, id) pair coming from a request
// or a row.
func ParseContentRef(contentType, id string) (ContentRef, error) {
	if id == "" {
		return ContentRef{}, errors.New("content id is required")
	}
	switch ContentType(contentType) {
	case ContentCourse:
		return CourseRef(id), nil
	case ContentBook:
		return BookRef(id), nil
	case ContentVideo:
		return VideoRef(id), nil
	}
	return ContentRef{}, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
}

// TableName names the table that holds the referenced row.
func (r ContentRef) TableName() string {
	switch r.Type {
	case ContentCourse:
		return Course{}.TableName()
	case ContentBook:
		return Book{}.TableName()
	case ContentVideo:
		return Video{}.TableName()
	}
	return ""
}

func (r ContentRef) String() string {
	return string(r.Type) + ":" + r.ID
}

// swagger:model Course
type Course struct {
	UUIDBase
	Title        string `gorm:"size:255;not null" json:"title"`
	Subject      string `gorm:"size:100;index" json:"subject"`
	Description  string `gorm:"type:text" json:"description"`
	ThumbnailURL string `gorm:"size:500" json:"thumbnailUrl"`
	CreatedBy    uint   `gorm:"index" json:"createdBy"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseContent is one ordered entry of a course outline.
type CourseContent struct {
	UUIDBase
	CourseID    string      `gorm:"index;type:varchar(36);not null" json:"courseId"`
	ContentType ContentType `gorm:"size:20;not null" json:"contentType"`
	ContentID   string      `gorm:"type:varchar(36);not null" json:"contentId"`
	OrderIndex  int         `gorm:"not null" json:"orderIndex"`
}

func (CourseContent) TableName() string {
	return "course_content"
}

func (c CourseContent) Ref() ContentRef {
	return ContentRef{Type: c.ContentType, ID: c.ContentID}
}

// swagger:model Book
type Book struct {
	UUIDBase
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Author        string                      `gorm:"size:255" json:"author"`
	Subject       string                      `gorm:"size:100;index" json:"subject"`
	Description   string                      `gorm:"type:text" json:"description"`
	FileURL       string                      `gorm:"size:500" json:"fileUrl"`
	CoverImageURL string                      `gorm:"size:500" json:"coverImageUrl"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	UploadedBy    uint                        `gorm:"index" json:"uploadedBy"`
}

func (Book) TableName() string {
	return "books"
}

// swagger:model Video
type Video struct {
	UUIDBase
	Title           string                      `gorm:"size:255;not null" json:"title"`
	Subject         string                      `gorm:"size:100;index" json:"subject"`
	Description     string                      `gorm:"type:text" json:"description"`
	VideoURL        string                      `gorm:"size:500;not null" json:"videoUrl"`
	ThumbnailURL    string                      `gorm:"size:500" json:"thumbnailUrl"`
	DurationMinutes *int                        `json:"durationMinutes"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	UploadedBy      uint                        `gorm:"index" json:"uploadedBy"`
}

func (Video) TableName() string {
	return "videos"
}
