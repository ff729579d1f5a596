package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	StatsService  *service.StatisticsService
	ExportService *service.ExportService
}

func NewStatisticsController(statsService *service.StatisticsService, exportService *service.ExportService) *StatisticsController {
	return &StatisticsController{
		StatsService:  statsService,
		ExportService: exportService,
	}
}

// GetStatistics returns the caller's aggregate. A user who has never
// submitted gets a freshly initialized zero-valued aggregate, so the
// endpoint answers 200 for every valid session.
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatsService.GetStatistics(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) || errors.Is(err, util.ErrProfileNotFound) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, service.ToStatisticsResponse(stats))
}

// GetProgress returns the trailing day buckets, oldest first. The days
// query parameter defaults to 30 and tops out at 365.
func (c *StatisticsController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	days := 0
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "days must be an integer")
			return
		}
		days = parsed
	}

	rows, err := c.StatsService.GetProgress(claims.UserID, days)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, service.ToProgressEntries(rows))
}

// ExportStatistics streams the caller's statistics as an xlsx download.
func (c *StatisticsController) ExportStatistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	days := 0
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "days must be an integer")
			return
		}
		days = parsed
	}

	data, filename, err := c.ExportService.ExportStatistics(ctx.Request.Context(), claims.UserID, days)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
