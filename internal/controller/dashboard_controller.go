package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	ProgressService  *service.ProgressService
}

func NewDashboardController(dashboardService *service.DashboardService, progressService *service.ProgressService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		ProgressService:  progressService,
	}
}

// StudentDashboard godoc
// @Summary Student dashboard counters
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	d, err := c.DashboardService.Student(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// AdminDashboard godoc
// @Summary Admin dashboard counters
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AdminDashboard}
// @Router /api/admin/dashboard [get]
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	d, err := c.DashboardService.Admin(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// UpdateProgress godoc
// @Summary Record progress through a course, book or video
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProgressReq true "progress"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /api/progress [put]
func (c *DashboardController) UpdateProgress(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.ProgressReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	p, err := c.ProgressService.Update(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// ListProgress godoc
// @Summary Caller's progress records
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress [get]
func (c *DashboardController) ListProgress(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	rows, err := c.ProgressService.List(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
