package service

import (
	"bytes"
	"studytrack_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	now := time.Now()
	stats := model.DefaultStatistics(3)
	stats = ApplyTaskEvent(stats, TaskEvent{Correct: true, Score: 100, TimeSpent: 30, Difficulty: "easy"}, now)

	rows := []model.UserProgress{
		{UserID: 3, Date: "2026-08-29", TasksCompleted: 2, TimeSpent: 60, CorrectCount: 1},
		{UserID: 3, Date: "2026-08-30", TasksCompleted: 1, TimeSpent: 30, CorrectCount: 1},
	}

	data, err := buildWorkbook(&stats, rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Overview")
	assert.Contains(t, f.GetSheetList(), "Daily Progress")

	successRate, err := f.GetCellValue("Overview", "B6")
	require.NoError(t, err)
	assert.Equal(t, "100.00", successRate)

	firstDate, err := f.GetCellValue("Daily Progress", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", firstDate)

	accuracy, err := f.GetCellValue("Daily Progress", "E3")
	require.NoError(t, err)
	assert.Equal(t, "100.00", accuracy)
}
