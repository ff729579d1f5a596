package model

import "time"

// TaskSubmission is the immutable record of a single task attempt.
// Rows are append-only: nothing in the statistics subsystem updates or
// deletes them after creation.
type TaskSubmission struct {
	BaseModel
	UserID       uint      `gorm:"index;not null" json:"userId"`
	TaskID       *uint     `gorm:"index" json:"taskId,omitempty"`
	SheetID      *uint     `gorm:"index" json:"sheetId,omitempty"`
	IsCorrect    bool      `gorm:"not null" json:"isCorrect"`
	Score        float64   `gorm:"not null" json:"score"`
	TimeSpent    int64     `gorm:"not null" json:"timeSpent"`
	Difficulty   string    `gorm:"size:20" json:"difficulty,omitempty"`
	Topic        string    `gorm:"size:100" json:"topic,omitempty"`
	QuestionType string    `gorm:"size:50" json:"questionType,omitempty"`
	UserAnswer   string    `gorm:"type:text" json:"userAnswer,omitempty"`
	UserSolution string    `gorm:"type:text" json:"userSolution,omitempty"`
	SubmittedAt  time.Time `gorm:"not null" json:"submittedAt"`
}

func (TaskSubmission) TableName() string {
	return "task_submissions"
}

// SheetSubmission is the immutable record of a whole-sheet attempt.
type SheetSubmission struct {
	BaseModel
	UserID             uint      `gorm:"index;not null" json:"userId"`
	SheetID            uint      `gorm:"index;not null" json:"sheetId"`
	TotalTasks         int       `gorm:"not null" json:"totalTasks"`
	CorrectTasks       int       `gorm:"not null" json:"correctTasks"`
	Accuracy           float64   `gorm:"not null" json:"accuracy"`
	TotalTimeSpent     int64     `gorm:"not null" json:"totalTimeSpent"`
	AverageTimePerTask float64   `json:"averageTimePerTask"`
	SubmittedAt        time.Time `gorm:"not null" json:"submittedAt"`
}

func (SheetSubmission) TableName() string {
	return "sheet_submissions"
}
