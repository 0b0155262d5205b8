package repository

import (
	"context"
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert keeps one progress row per (user, content).
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.Progress) error {
	if p.ID == "" {
		p.ID = model.GenerateUUID()
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_type"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "progress_percentage", "completed_at", "updated_at"}),
	}).Create(p).Error
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uint) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at desc").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountCompleted(ctx context.Context, userID uint, contentType model.ContentType) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Progress{}).
		Where("user_id = ? AND content_type = ? AND status = ?", userID, contentType, model.ProgressCompleted).
		Count(&n).Error
	return n, err
}
