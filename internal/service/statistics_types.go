package service

import (
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/util"
	"time"
)

// TaskSubmissionRequest is the body of POST /submissions/task. Only
// correctness, score and time are mandatory; classification fields are
// optional and default to "absent".
type TaskSubmissionRequest struct {
	TaskID       *uint   `json:"taskId"`
	SheetID      *uint   `json:"sheetId"`
	IsCorrect    *bool   `json:"isCorrect"`
	Score        float64 `json:"score"`
	TimeSpent    int64   `json:"timeSpent"`
	Difficulty   string  `json:"difficulty"`
	Topic        string  `json:"topic"`
	QuestionType string  `json:"questionType"`
	UserAnswer   string  `json:"userAnswer"`
	UserSolution string  `json:"userSolution"`
}

func (r *TaskSubmissionRequest) Validate() error {
	if r.IsCorrect == nil {
		return validationError("isCorrect is required")
	}
	if r.Score < 0 {
		return validationError("score must not be negative")
	}
	if r.TimeSpent < 0 {
		return validationError("timeSpent must not be negative")
	}
	return nil
}

// SheetSubmissionRequest is the body of POST /submissions/sheet.
type SheetSubmissionRequest struct {
	SheetID            uint     `json:"sheetId"`
	TotalTasks         int      `json:"totalTasks"`
	CorrectTasks       int      `json:"correctTasks"`
	TotalTimeSpent     int64    `json:"totalTimeSpent"`
	AverageTimePerTask *float64 `json:"averageTimePerTask"`
}

func (r *SheetSubmissionRequest) Validate() error {
	if r.SheetID == 0 {
		return validationError("sheetId is required")
	}
	if r.TotalTasks <= 0 {
		return validationError("totalTasks must be greater than 0")
	}
	if r.CorrectTasks < 0 {
		return validationError("correctTasks must not be negative")
	}
	if r.CorrectTasks > r.TotalTasks {
		return validationError("correctTasks must not exceed totalTasks")
	}
	if r.TotalTimeSpent < 0 {
		return validationError("totalTimeSpent must not be negative")
	}
	return nil
}

// StatisticsResponse renders the aggregate the way the API exposes it:
// percentage fields carry two decimals as strings.
type StatisticsResponse struct {
	UserID             uint                    `json:"userId"`
	SolvedTasks        int64                   `json:"solvedTasks"`
	TotalTaskAttempts  int64                   `json:"totalTaskAttempts"`
	SolvedSheets       int64                   `json:"solvedSheets"`
	TotalSheetAttempts int64                   `json:"totalSheetAttempts"`
	SuccessRate        string                  `json:"successRate"`
	AverageScore       string                  `json:"averageScore"`
	TotalTimeSpent     int64                   `json:"totalTimeSpent"`
	TasksByDifficulty  model.DifficultyCounts  `json:"tasksByDifficulty"`
	TasksByTopic       model.KeyedCounts       `json:"tasksByTopic"`
	TasksByType        model.KeyedCounts       `json:"tasksByType"`
	RecentActivity     int64                   `json:"recentActivity"`
	LastActivityAt     *time.Time              `json:"lastActivityAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

func ToStatisticsResponse(stats *model.UserStatistics) *StatisticsResponse {
	return &StatisticsResponse{
		UserID:             stats.UserID,
		SolvedTasks:        stats.SolvedTasks,
		TotalTaskAttempts:  stats.TotalTaskAttempts,
		SolvedSheets:       stats.SolvedSheets,
		TotalSheetAttempts: stats.TotalSheetAttempts,
		SuccessRate:        util.FormatPercent(stats.SuccessRate),
		AverageScore:       util.FormatPercent(stats.AverageScore),
		TotalTimeSpent:     stats.TotalTimeSpent,
		TasksByDifficulty:  stats.TasksByDifficulty,
		TasksByTopic:       stats.TasksByTopic,
		TasksByType:        stats.TasksByType,
		RecentActivity:     stats.RecentActivity,
		LastActivityAt:     stats.LastActivityAt,
		UpdatedAt:          stats.UpdatedAt,
	}
}

// ProgressEntry is one day bucket as returned by GET /statistics/progress.
type ProgressEntry struct {
	Date            string `json:"date"`
	TasksCompleted  int64  `json:"tasksCompleted"`
	SheetsCompleted int64  `json:"sheetsCompleted"`
	TimeSpent       int64  `json:"timeSpent"`
	Accuracy        string `json:"accuracy"`
}

func ToProgressEntries(rows []model.UserProgress) []ProgressEntry {
	entries := make([]ProgressEntry, 0, len(rows))
	for i := range rows {
		p := &rows[i]
		entries = append(entries, ProgressEntry{
			Date:            p.Date,
			TasksCompleted:  p.TasksCompleted,
			SheetsCompleted: p.SheetsCompleted,
			TimeSpent:       p.TimeSpent,
			Accuracy:        util.FormatPercent(p.Accuracy()),
		})
	}
	return entries
}
