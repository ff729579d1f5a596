package model

import "math"

// UserProgress is a day bucket: one row per (user, calendar date).
// Instead of persisting a pre-divided accuracy percentage, the bucket keeps
// the raw correct count (fractional for sheets) and derives accuracy at
// read time, so repeated same-day writes never accumulate rounding error.
type UserProgress struct {
	BaseModel
	UserID          uint    `gorm:"uniqueIndex:idx_user_date;not null" json:"userId"`
	Date            string  `gorm:"uniqueIndex:idx_user_date;size:10;not null" json:"date"`
	TasksCompleted  int64   `gorm:"not null;default:0" json:"tasksCompleted"`
	SheetsCompleted int64   `gorm:"not null;default:0" json:"sheetsCompleted"`
	TimeSpent       int64   `gorm:"not null;default:0" json:"timeSpent"`
	CorrectCount    float64 `gorm:"not null;default:0" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// Attempts is the total number of events folded into this bucket.
func (p *UserProgress) Attempts() int64 {
	return p.TasksCompleted + p.SheetsCompleted
}

// Accuracy derives the weighted mean accuracy for the day, in [0,100],
// rounded to two decimals.
func (p *UserProgress) Accuracy() float64 {
	attempts := p.Attempts()
	if attempts == 0 {
		return 0
	}
	return math.Round(p.CorrectCount/float64(attempts)*100*100) / 100
}
