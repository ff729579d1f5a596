package controller

import (
	"errors"
	"strconv"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	StatsService *service.StatisticsService
}

func NewSubmissionController(statsService *service.StatisticsService) *SubmissionController {
	return &SubmissionController{StatsService: statsService}
}

// SubmitTask records one task attempt and folds it into the caller's
// statistics. Responds 201 with the stored submission.
func (c *SubmissionController) SubmitTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.StatsService.RecordTaskResult(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, submission)
}

// SubmitSheet records one completed sheet attempt.
func (c *SubmissionController) SubmitSheet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SheetSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.StatsService.RecordSheetResult(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, submission)
}

// ListRecent returns the caller's latest submissions of both kinds,
// newest first. The limit query parameter defaults to 20 and tops out at 100.
func (c *SubmissionController) ListRecent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "limit must be an integer")
			return
		}
		limit = parsed
	}

	tasks, sheets, err := c.StatsService.RecentSubmissions(claims.UserID, limit)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"tasks":  tasks,
		"sheets": sheets,
	})
}
