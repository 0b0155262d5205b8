package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"time"
)

type ProgressService struct {
	Repo        *repository.ProgressRepository
	ContentRepo *repository.ContentRepository
}

func NewProgressService(repo *repository.ProgressRepository, contentRepo *repository.ContentRepository) *ProgressService {
	return &ProgressService{Repo: repo, ContentRepo: contentRepo}
}

type ProgressReq struct {
	ContentType        string `json:"contentType" binding:"required"`
	ContentID          string `json:"contentId" binding:"required"`
	ProgressPercentage int    `json:"progressPercentage" binding:"min=0,max=100"`
	Completed          bool   `json:"completed"`
}

// Update records how far the user got. Reaching 100 percent, or passing
// completed, marks the content completed.
func (s *ProgressService) Update(ctx context.Context, userID uint, req *ProgressReq) (*model.Progress, error) {
	if req.ProgressPercentage < 0 || req.ProgressPercentage > 100 {
		return nil, util.NewValidationError("progressPercentage", "must be between 0 and 100")
	}
	ref, err := model.ParseContentRef(req.ContentType, req.ContentID)
	if err != nil {
		return nil, util.NewValidationError("contentType", err.Error())
	}
	if _, err := s.ContentRepo.ResolveTitle(ctx, ref); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	p := &model.Progress{
		UserID:             userID,
		ContentType:        ref.Type,
		ContentID:          ref.ID,
		Status:             model.ProgressInProgress,
		ProgressPercentage: req.ProgressPercentage,
	}
	if req.Completed || req.ProgressPercentage == 100 {
		now := time.Now()
		p.Status = model.ProgressCompleted
		p.ProgressPercentage = 100
		p.CompletedAt = &now
	}
	if err := s.Repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgressService) List(ctx context.Context, userID uint) ([]model.Progress, error) {
	return s.Repo.ListByUser(ctx, userID)
}
