package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DifficultyCounts is a JSON column mapping difficulty -> attempt count.
// One bucket is incremented per task attempt regardless of correctness;
// unknown difficulty values become new keys rather than being rejected.
type DifficultyCounts map[string]int64

// NewDifficultyCounts seeds the three standard buckets so a fresh aggregate
// serializes as {easy:0, medium:0, hard:0}.
func NewDifficultyCounts() DifficultyCounts {
	return DifficultyCounts{"easy": 0, "medium": 0, "hard": 0}
}

func (d DifficultyCounts) Value() (driver.Value, error) {
	if d == nil {
		d = NewDifficultyCounts()
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DifficultyCounts) Scan(value interface{}) error {
	if value == nil {
		*d = NewDifficultyCounts()
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported type %T for DifficultyCounts", value)
	}
}

// Clone returns an independent copy of the bucket map.
func (d DifficultyCounts) Clone() DifficultyCounts {
	out := make(DifficultyCounts, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// CorrectTotal tracks per-key attempt outcomes; Correct never exceeds Total.
type CorrectTotal struct {
	Correct int64 `json:"correct"`
	Total   int64 `json:"total"`
}

// KeyedCounts is a sparse map column (topic or question type -> counts).
// Keys are created on first occurrence; no closed enumeration is enforced.
type KeyedCounts map[string]CorrectTotal

func (m KeyedCounts) Value() (driver.Value, error) {
	if m == nil {
		m = KeyedCounts{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *KeyedCounts) Scan(value interface{}) error {
	if value == nil {
		*m = KeyedCounts{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for KeyedCounts")
	}
}

// Clone returns an independent copy so pure transitions never alias the
// previous aggregate's map.
func (m KeyedCounts) Clone() KeyedCounts {
	out := make(KeyedCounts, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// UserStatistics is the single running aggregate row per user. It is only
// ever mutated inside a transaction by the submission recording path.
type UserStatistics struct {
	BaseModel
	UserID             uint             `gorm:"uniqueIndex;not null" json:"userId"`
	SolvedTasks        int64            `gorm:"not null;default:0" json:"solvedTasks"`
	TotalTaskAttempts  int64            `gorm:"not null;default:0" json:"totalTaskAttempts"`
	SolvedSheets       int64            `gorm:"not null;default:0" json:"solvedSheets"`
	TotalSheetAttempts int64            `gorm:"not null;default:0" json:"totalSheetAttempts"`
	SuccessRate        float64          `gorm:"not null;default:0" json:"successRate"`
	AverageScore       float64          `gorm:"not null;default:0" json:"averageScore"`
	TotalTimeSpent     int64            `gorm:"not null;default:0" json:"totalTimeSpent"`
	TasksByDifficulty  DifficultyCounts `gorm:"type:json" json:"tasksByDifficulty"`
	TasksByTopic       KeyedCounts      `gorm:"type:json" json:"tasksByTopic"`
	TasksByType        KeyedCounts      `gorm:"type:json" json:"tasksByType"`
	RecentActivity     int64            `gorm:"not null;default:0" json:"recentActivity"`
	LastActivityAt     *time.Time       `json:"lastActivityAt"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}

// DefaultStatistics is the zero-valued aggregate used both for lazy
// initialization and for the first-ever submission of a user.
func DefaultStatistics(userID uint) UserStatistics {
	return UserStatistics{
		UserID:            userID,
		TasksByDifficulty: NewDifficultyCounts(),
		TasksByTopic:      KeyedCounts{},
		TasksByType:       KeyedCounts{},
	}
}
