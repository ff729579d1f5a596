package service

import (
	"studytrack_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTaskEvent_FirstAttempt(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)

	next := ApplyTaskEvent(prev, TaskEvent{
		Correct:      true,
		Score:        100,
		TimeSpent:    30,
		Difficulty:   "easy",
		Topic:        "math",
		QuestionType: "single_choice",
	}, now)

	assert.Equal(t, int64(1), next.SolvedTasks)
	assert.Equal(t, int64(1), next.TotalTaskAttempts)
	assert.Equal(t, 100.0, next.SuccessRate)
	assert.Equal(t, 100.0, next.AverageScore)
	assert.Equal(t, int64(30), next.TotalTimeSpent)
	assert.Equal(t, int64(1), next.TasksByDifficulty["easy"])
	assert.Equal(t, model.CorrectTotal{Correct: 1, Total: 1}, next.TasksByTopic["math"])
	assert.Equal(t, model.CorrectTotal{Correct: 1, Total: 1}, next.TasksByType["single_choice"])
	assert.Equal(t, int64(1), next.RecentActivity)
	require.NotNil(t, next.LastActivityAt)
	assert.Equal(t, now, *next.LastActivityAt)
}

func TestApplyTaskEvent_RunningMean(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)

	first := ApplyTaskEvent(prev, TaskEvent{Correct: true, Score: 100, TimeSpent: 30}, now)
	second := ApplyTaskEvent(first, TaskEvent{Correct: false, Score: 40, TimeSpent: 20}, now)

	assert.Equal(t, int64(1), second.SolvedTasks)
	assert.Equal(t, int64(2), second.TotalTaskAttempts)
	assert.Equal(t, 50.0, second.SuccessRate)
	assert.Equal(t, 70.0, second.AverageScore)
	assert.Equal(t, int64(50), second.TotalTimeSpent)
	assert.Equal(t, int64(2), second.RecentActivity)
}

func TestApplyTaskEvent_MeanRounding(t *testing.T) {
	now := time.Now()
	stats := model.DefaultStatistics(1)

	for _, score := range []float64{100, 0, 0} {
		stats = ApplyTaskEvent(stats, TaskEvent{Correct: false, Score: score}, now)
	}

	// 100/3 rounds to two decimals.
	assert.Equal(t, 33.33, stats.AverageScore)
	assert.Equal(t, 0.0, stats.SuccessRate)
}

func TestApplyTaskEvent_UnknownDifficultyBecomesKey(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)

	next := ApplyTaskEvent(prev, TaskEvent{Correct: true, Score: 50, Difficulty: "legendary"}, now)

	assert.Equal(t, int64(1), next.TasksByDifficulty["legendary"])
	assert.Equal(t, int64(0), next.TasksByDifficulty["easy"])
}

func TestApplyTaskEvent_EmptyClassificationLeavesBucketsUntouched(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)

	next := ApplyTaskEvent(prev, TaskEvent{Correct: true, Score: 50}, now)

	assert.Equal(t, model.NewDifficultyCounts(), next.TasksByDifficulty)
	assert.Empty(t, next.TasksByTopic)
	assert.Empty(t, next.TasksByType)
}

func TestApplyTaskEvent_DoesNotAliasPreviousMaps(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)
	prev.TasksByTopic["math"] = model.CorrectTotal{Correct: 2, Total: 3}

	next := ApplyTaskEvent(prev, TaskEvent{Correct: true, Score: 90, Topic: "math", Difficulty: "hard"}, now)

	assert.Equal(t, model.CorrectTotal{Correct: 2, Total: 3}, prev.TasksByTopic["math"])
	assert.Equal(t, model.CorrectTotal{Correct: 3, Total: 4}, next.TasksByTopic["math"])
	assert.Equal(t, int64(0), prev.TasksByDifficulty["hard"])
}

func TestApplyTaskEvent_NilMapsInitialized(t *testing.T) {
	now := time.Now()
	prev := model.UserStatistics{UserID: 1}

	next := ApplyTaskEvent(prev, TaskEvent{Correct: true, Score: 80, Difficulty: "medium", Topic: "go"}, now)

	assert.Equal(t, int64(1), next.TasksByDifficulty["medium"])
	assert.Equal(t, model.CorrectTotal{Correct: 1, Total: 1}, next.TasksByTopic["go"])
	assert.NotNil(t, next.TasksByType)
}

func TestSheetEventAccuracy(t *testing.T) {
	assert.Equal(t, 80.0, SheetEvent{TotalTasks: 10, CorrectTasks: 8}.Accuracy())
	assert.Equal(t, 33.33, SheetEvent{TotalTasks: 3, CorrectTasks: 1}.Accuracy())
	assert.Equal(t, 0.0, SheetEvent{TotalTasks: 5, CorrectTasks: 0}.Accuracy())
	assert.Equal(t, 100.0, SheetEvent{TotalTasks: 5, CorrectTasks: 5}.Accuracy())
}

func TestApplySheetEvent_FirstAttempt(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)

	next := ApplySheetEvent(prev, SheetEvent{TotalTasks: 10, CorrectTasks: 8, TotalTimeSpent: 600}, now)

	assert.Equal(t, int64(1), next.SolvedSheets)
	assert.Equal(t, int64(1), next.TotalSheetAttempts)
	assert.Equal(t, 100.0, next.SuccessRate)
	assert.Equal(t, 80.0, next.AverageScore)
	assert.Equal(t, int64(600), next.TotalTimeSpent)
	assert.Equal(t, int64(1), next.RecentActivity)
	require.NotNil(t, next.LastActivityAt)
}

func TestApplySheetEvent_SolvedThreshold(t *testing.T) {
	now := time.Now()

	// Exactly at the threshold counts as solved.
	at := ApplySheetEvent(model.DefaultStatistics(1), SheetEvent{TotalTasks: 10, CorrectTasks: 7}, now)
	assert.Equal(t, int64(1), at.SolvedSheets)

	below := ApplySheetEvent(model.DefaultStatistics(1), SheetEvent{TotalTasks: 10, CorrectTasks: 6}, now)
	assert.Equal(t, int64(0), below.SolvedSheets)
	assert.Equal(t, int64(1), below.TotalSheetAttempts)
	assert.Equal(t, 0.0, below.SuccessRate)
}

func TestApplySheetEvent_CombinedPool(t *testing.T) {
	now := time.Now()
	stats := model.DefaultStatistics(1)

	stats = ApplyTaskEvent(stats, TaskEvent{Correct: true, Score: 100}, now)
	stats = ApplySheetEvent(stats, SheetEvent{TotalTasks: 10, CorrectTasks: 8}, now)

	// Sheet path: success rate and mean over the task+sheet pool.
	assert.Equal(t, 100.0, stats.SuccessRate)
	assert.Equal(t, 90.0, stats.AverageScore)

	stats = ApplyTaskEvent(stats, TaskEvent{Correct: false, Score: 0}, now)

	// Task path: both the success-rate denominator and the mean's weight
	// drop back to task attempts only.
	assert.Equal(t, 50.0, stats.SuccessRate)
	assert.Equal(t, 45.0, stats.AverageScore)
}

func TestApplySheetEvent_DoesNotTouchTaskBuckets(t *testing.T) {
	now := time.Now()
	prev := model.DefaultStatistics(1)
	prev = ApplyTaskEvent(prev, TaskEvent{Correct: true, Score: 100, Difficulty: "hard", Topic: "go"}, now)

	next := ApplySheetEvent(prev, SheetEvent{TotalTasks: 4, CorrectTasks: 4}, now)

	assert.Equal(t, prev.TasksByDifficulty, next.TasksByDifficulty)
	assert.Equal(t, prev.TasksByTopic, next.TasksByTopic)
	assert.Equal(t, prev.TasksByType, next.TasksByType)
}

func TestCountersNeverDecrease(t *testing.T) {
	now := time.Now()
	stats := model.DefaultStatistics(1)

	events := []func(model.UserStatistics) model.UserStatistics{
		func(s model.UserStatistics) model.UserStatistics {
			return ApplyTaskEvent(s, TaskEvent{Correct: true, Score: 90, TimeSpent: 10, Topic: "go"}, now)
		},
		func(s model.UserStatistics) model.UserStatistics {
			return ApplySheetEvent(s, SheetEvent{TotalTasks: 10, CorrectTasks: 3, TotalTimeSpent: 100}, now)
		},
		func(s model.UserStatistics) model.UserStatistics {
			return ApplyTaskEvent(s, TaskEvent{Correct: false, Score: 0, TimeSpent: 5, Topic: "go"}, now)
		},
		func(s model.UserStatistics) model.UserStatistics {
			return ApplySheetEvent(s, SheetEvent{TotalTasks: 2, CorrectTasks: 2, TotalTimeSpent: 50}, now)
		},
	}

	for _, apply := range events {
		next := apply(stats)

		assert.GreaterOrEqual(t, next.SolvedTasks, stats.SolvedTasks)
		assert.GreaterOrEqual(t, next.TotalTaskAttempts, stats.TotalTaskAttempts)
		assert.GreaterOrEqual(t, next.SolvedSheets, stats.SolvedSheets)
		assert.GreaterOrEqual(t, next.TotalSheetAttempts, stats.TotalSheetAttempts)
		assert.GreaterOrEqual(t, next.TotalTimeSpent, stats.TotalTimeSpent)
		assert.GreaterOrEqual(t, next.RecentActivity, stats.RecentActivity)
		assert.LessOrEqual(t, next.SolvedTasks, next.TotalTaskAttempts)
		assert.LessOrEqual(t, next.SolvedSheets, next.TotalSheetAttempts)

		for key, bucket := range next.TasksByTopic {
			assert.LessOrEqual(t, bucket.Correct, bucket.Total, "topic %s", key)
		}

		stats = next
	}
}

func TestApplyTaskToDay(t *testing.T) {
	day := ApplyTaskToDay(nil, 7, "2026-08-30", true, 30)

	assert.Equal(t, uint(7), day.UserID)
	assert.Equal(t, "2026-08-30", day.Date)
	assert.Equal(t, int64(1), day.TasksCompleted)
	assert.Equal(t, int64(30), day.TimeSpent)
	assert.Equal(t, 100.0, day.Accuracy())

	day = ApplyTaskToDay(&day, 7, "2026-08-30", false, 20)

	assert.Equal(t, int64(2), day.TasksCompleted)
	assert.Equal(t, int64(50), day.TimeSpent)
	assert.Equal(t, 50.0, day.Accuracy())
}

func TestApplySheetToDay(t *testing.T) {
	day := ApplyTaskToDay(nil, 7, "2026-08-30", true, 30)
	day = ApplySheetToDay(&day, 7, "2026-08-30", 80.0, 600)

	assert.Equal(t, int64(1), day.TasksCompleted)
	assert.Equal(t, int64(1), day.SheetsCompleted)
	assert.Equal(t, int64(630), day.TimeSpent)
	// (1 + 0.8) correct over 2 attempts.
	assert.Equal(t, 90.0, day.Accuracy())
}

func TestDayAccuracyEmptyBucket(t *testing.T) {
	day := model.UserProgress{UserID: 1, Date: "2026-08-30"}
	assert.Equal(t, 0.0, day.Accuracy())
	assert.Equal(t, int64(0), day.Attempts())
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2026-08-30", DayKey(ts))
}
