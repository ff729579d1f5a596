package service

import (
	"bytes"
	"context"
	"fmt"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/util"
	"studytrack_backend/pkg/logger"
	"studytrack_backend/pkg/monitoring"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService renders a user's statistics as an xlsx workbook: one
// overview sheet for the aggregate, one sheet with the daily ledger.
type ExportService struct {
	Stats   *StatisticsService
	Storage StorageProvider
}

func NewExportService(stats *StatisticsService, storage StorageProvider) *ExportService {
	return &ExportService{Stats: stats, Storage: storage}
}

// ExportStatistics builds the workbook for the trailing days of progress.
// When a storage provider is configured a copy is archived; archive
// failures are logged but never fail the download.
func (s *ExportService) ExportStatistics(ctx context.Context, userID uint, days int) ([]byte, string, error) {
	stats, err := s.Stats.GetStatistics(userID)
	if err != nil {
		monitoring.ExportCounter.WithLabelValues("failed").Inc()
		return nil, "", err
	}

	rows, err := s.Stats.GetProgress(userID, days)
	if err != nil {
		monitoring.ExportCounter.WithLabelValues("failed").Inc()
		return nil, "", err
	}

	data, err := buildWorkbook(stats, rows)
	if err != nil {
		monitoring.ExportCounter.WithLabelValues("failed").Inc()
		return nil, "", err
	}

	filename := fmt.Sprintf("statistics_%d_%s_%s.xlsx",
		userID, time.Now().Format("20060102"), model.GenerateUUID()[:8])

	if s.Storage != nil {
		if _, err := s.Storage.Upload(ctx, "exports/"+filename, bytes.NewReader(data), int64(len(data)), exportContentType); err != nil {
			logger.Log.Warn("failed to archive statistics export",
				zap.Uint("userId", userID), zap.Error(err))
		}
	}

	monitoring.ExportCounter.WithLabelValues("completed").Inc()
	return data, filename, nil
}

// buildWorkbook renders the aggregate and the daily ledger into xlsx.
func buildWorkbook(stats *model.UserStatistics, rows []model.UserProgress) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	overview := "Overview"
	f.SetSheetName("Sheet1", overview)

	resp := ToStatisticsResponse(stats)
	overviewRows := [][]interface{}{
		{"Metric", "Value"},
		{"Solved tasks", resp.SolvedTasks},
		{"Total task attempts", resp.TotalTaskAttempts},
		{"Solved sheets", resp.SolvedSheets},
		{"Total sheet attempts", resp.TotalSheetAttempts},
		{"Success rate (%)", resp.SuccessRate},
		{"Average score", resp.AverageScore},
		{"Total time spent (s)", resp.TotalTimeSpent},
		{"Recorded attempts", resp.RecentActivity},
	}
	for i, row := range overviewRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			return nil, err
		}
	}

	daily := "Daily Progress"
	if _, err := f.NewSheet(daily); err != nil {
		return nil, err
	}
	header := []interface{}{"Date", "Tasks", "Sheets", "Time spent (s)", "Accuracy (%)"}
	if err := f.SetSheetRow(daily, "A1", &header); err != nil {
		return nil, err
	}
	for i := range rows {
		p := &rows[i]
		row := []interface{}{p.Date, p.TasksCompleted, p.SheetsCompleted, p.TimeSpent, util.FormatPercent(p.Accuracy())}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(daily, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
