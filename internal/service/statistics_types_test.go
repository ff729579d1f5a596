package service

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestTaskSubmissionRequestValidate(t *testing.T) {
	valid := TaskSubmissionRequest{IsCorrect: boolPtr(true), Score: 80, TimeSpent: 30}
	assert.NoError(t, valid.Validate())

	missing := TaskSubmissionRequest{Score: 80}
	err := missing.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrValidation))
	assert.Contains(t, err.Error(), "isCorrect")

	negScore := TaskSubmissionRequest{IsCorrect: boolPtr(false), Score: -1}
	assert.True(t, errors.Is(negScore.Validate(), util.ErrValidation))

	negTime := TaskSubmissionRequest{IsCorrect: boolPtr(false), TimeSpent: -5}
	assert.True(t, errors.Is(negTime.Validate(), util.ErrValidation))
}

func TestSheetSubmissionRequestValidate(t *testing.T) {
	valid := SheetSubmissionRequest{SheetID: 3, TotalTasks: 10, CorrectTasks: 8, TotalTimeSpent: 600}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name string
		req  SheetSubmissionRequest
	}{
		{"missing sheet id", SheetSubmissionRequest{TotalTasks: 10, CorrectTasks: 5}},
		{"zero total tasks", SheetSubmissionRequest{SheetID: 3, TotalTasks: 0}},
		{"negative correct", SheetSubmissionRequest{SheetID: 3, TotalTasks: 10, CorrectTasks: -1}},
		{"correct exceeds total", SheetSubmissionRequest{SheetID: 3, TotalTasks: 10, CorrectTasks: 11}},
		{"negative time", SheetSubmissionRequest{SheetID: 3, TotalTasks: 10, CorrectTasks: 5, TotalTimeSpent: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, util.ErrValidation))
		})
	}
}

func TestToStatisticsResponseFormatting(t *testing.T) {
	now := time.Now()
	stats := model.DefaultStatistics(5)
	stats = ApplyTaskEvent(stats, TaskEvent{Correct: true, Score: 100, TimeSpent: 30}, now)
	stats = ApplyTaskEvent(stats, TaskEvent{Correct: true, Score: 100}, now)
	stats = ApplyTaskEvent(stats, TaskEvent{Correct: false, Score: 0}, now)

	resp := ToStatisticsResponse(&stats)

	assert.Equal(t, uint(5), resp.UserID)
	assert.Equal(t, "66.67", resp.SuccessRate)
	assert.Equal(t, "66.67", resp.AverageScore)
	assert.Equal(t, int64(3), resp.RecentActivity)
	require.NotNil(t, resp.LastActivityAt)
}

func TestToStatisticsResponseZeroAggregate(t *testing.T) {
	stats := model.DefaultStatistics(1)
	resp := ToStatisticsResponse(&stats)

	assert.Equal(t, "0.00", resp.SuccessRate)
	assert.Equal(t, "0.00", resp.AverageScore)
	assert.Nil(t, resp.LastActivityAt)
	assert.Equal(t, model.NewDifficultyCounts(), resp.TasksByDifficulty)
}

func TestToProgressEntries(t *testing.T) {
	rows := []model.UserProgress{
		{UserID: 1, Date: "2026-08-29", TasksCompleted: 2, TimeSpent: 60, CorrectCount: 1},
		{UserID: 1, Date: "2026-08-30", TasksCompleted: 1, SheetsCompleted: 1, TimeSpent: 630, CorrectCount: 1.8},
	}

	entries := ToProgressEntries(rows)
	require.Len(t, entries, 2)

	assert.Equal(t, "2026-08-29", entries[0].Date)
	assert.Equal(t, "50.00", entries[0].Accuracy)
	assert.Equal(t, "2026-08-30", entries[1].Date)
	assert.Equal(t, "90.00", entries[1].Accuracy)
	assert.Equal(t, int64(630), entries[1].TimeSpent)
}
