package model

import "time"

type ProgressStatus string

const (
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// Progress tracks how far a user got through one piece of content.
type Progress struct {
	UUIDBase
	UserID             uint           `gorm:"not null;uniqueIndex:idx_progress_user_content" json:"userId"`
	ContentType        ContentType    `gorm:"size:20;not null;uniqueIndex:idx_progress_user_content" json:"contentType"`
	ContentID          string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_content" json:"contentId"`
	Status             ProgressStatus `gorm:"size:20;not null;default:'in_progress'" json:"status"`
	ProgressPercentage int            `gorm:"default:0" json:"progressPercentage"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty"`
}

func (Progress) TableName() string {
	return "progress"
}
