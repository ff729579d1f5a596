package service

import (
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/util"
	"time"
)

// SheetSolvedThreshold is the accuracy at or above which a sheet attempt
// counts as solved.
const SheetSolvedThreshold = 70.0

// TaskEvent is one task attempt. Classification fields are optional; an
// empty value leaves the corresponding bucket untouched.
type TaskEvent struct {
	Correct      bool
	Score        float64
	TimeSpent    int64
	Difficulty   string
	Topic        string
	QuestionType string
}

// SheetEvent is one whole-sheet attempt. Correctness is derived from the
// accuracy threshold, not a boolean flag.
type SheetEvent struct {
	TotalTasks     int
	CorrectTasks   int
	TotalTimeSpent int64
}

// Accuracy is the sheet's percentage of correct tasks, two decimals.
func (ev SheetEvent) Accuracy() float64 {
	return util.Round2(float64(ev.CorrectTasks) / float64(ev.TotalTasks) * 100)
}

// ApplyTaskEvent computes the next aggregate from the previous one and a
// task attempt. Pure and total: no I/O, no failure path, and the returned
// value never aliases prev's maps.
//
// The task path recomputes successRate and the running mean over task
// attempts only; the sheet path uses the combined pool. The asymmetry is
// deliberate and pinned by tests.
func ApplyTaskEvent(prev model.UserStatistics, ev TaskEvent, now time.Time) model.UserStatistics {
	next := prev
	next.TasksByDifficulty = prev.TasksByDifficulty.Clone()
	next.TasksByTopic = prev.TasksByTopic.Clone()
	next.TasksByType = prev.TasksByType.Clone()
	if next.TasksByDifficulty == nil {
		next.TasksByDifficulty = model.NewDifficultyCounts()
	}
	if next.TasksByTopic == nil {
		next.TasksByTopic = model.KeyedCounts{}
	}
	if next.TasksByType == nil {
		next.TasksByType = model.KeyedCounts{}
	}

	next.TotalTaskAttempts = prev.TotalTaskAttempts + 1
	if ev.Correct {
		next.SolvedTasks = prev.SolvedTasks + 1
	}

	next.SuccessRate = util.Round2(float64(next.SolvedTasks) / float64(next.TotalTaskAttempts) * 100)

	// Running mean over task attempts; the first attempt reduces to the
	// raw score, avoiding the zero denominator.
	if next.TotalTaskAttempts == 1 {
		next.AverageScore = util.Round2(ev.Score)
	} else {
		next.AverageScore = util.Round2(
			(prev.AverageScore*float64(prev.TotalTaskAttempts) + ev.Score) / float64(next.TotalTaskAttempts))
	}

	next.TotalTimeSpent = prev.TotalTimeSpent + ev.TimeSpent

	if ev.Difficulty != "" {
		next.TasksByDifficulty[ev.Difficulty]++
	}
	if ev.Topic != "" {
		bucket := next.TasksByTopic[ev.Topic]
		bucket.Total++
		if ev.Correct {
			bucket.Correct++
		}
		next.TasksByTopic[ev.Topic] = bucket
	}
	if ev.QuestionType != "" {
		bucket := next.TasksByType[ev.QuestionType]
		bucket.Total++
		if ev.Correct {
			bucket.Correct++
		}
		next.TasksByType[ev.QuestionType] = bucket
	}

	next.RecentActivity = prev.RecentActivity + 1
	t := now
	next.LastActivityAt = &t

	return next
}

// ApplySheetEvent computes the next aggregate from a sheet attempt. A sheet
// is solved when its accuracy reaches the threshold; success rate and the
// running mean are recomputed over the combined task+sheet pool, folding in
// the sheet's accuracy as its score. Difficulty/topic/type buckets are not
// touched by this path.
func ApplySheetEvent(prev model.UserStatistics, ev SheetEvent, now time.Time) model.UserStatistics {
	next := prev
	next.TasksByDifficulty = prev.TasksByDifficulty.Clone()
	next.TasksByTopic = prev.TasksByTopic.Clone()
	next.TasksByType = prev.TasksByType.Clone()

	accuracy := ev.Accuracy()
	solved := accuracy >= SheetSolvedThreshold

	next.TotalSheetAttempts = prev.TotalSheetAttempts + 1
	if solved {
		next.SolvedSheets = prev.SolvedSheets + 1
	}

	combinedAttempts := prev.TotalTaskAttempts + next.TotalSheetAttempts
	next.SuccessRate = util.Round2(
		float64(prev.SolvedTasks+next.SolvedSheets) / float64(combinedAttempts) * 100)

	prevCombined := prev.TotalTaskAttempts + prev.TotalSheetAttempts
	if prevCombined == 0 {
		next.AverageScore = accuracy
	} else {
		next.AverageScore = util.Round2(
			(prev.AverageScore*float64(prevCombined) + accuracy) / float64(prevCombined+1))
	}

	next.TotalTimeSpent = prev.TotalTimeSpent + ev.TotalTimeSpent
	next.RecentActivity = prev.RecentActivity + 1
	t := now
	next.LastActivityAt = &t

	return next
}

// ApplyTaskToDay folds a task attempt into the day bucket, creating it when
// prev is nil. The bucket keeps the raw correct count so the day's accuracy
// stays exact under any number of same-day events.
func ApplyTaskToDay(prev *model.UserProgress, userID uint, date string, correct bool, timeSpent int64) model.UserProgress {
	var day model.UserProgress
	if prev != nil {
		day = *prev
	} else {
		day = model.UserProgress{UserID: userID, Date: date}
	}

	day.TasksCompleted++
	day.TimeSpent += timeSpent
	if correct {
		day.CorrectCount++
	}
	return day
}

// ApplySheetToDay folds a sheet attempt into the day bucket. The sheet
// contributes its accuracy as a fractional correct count.
func ApplySheetToDay(prev *model.UserProgress, userID uint, date string, accuracy float64, timeSpent int64) model.UserProgress {
	var day model.UserProgress
	if prev != nil {
		day = *prev
	} else {
		day = model.UserProgress{UserID: userID, Date: date}
	}

	day.SheetsCompleted++
	day.TimeSpent += timeSpent
	day.CorrectCount += accuracy / 100
	return day
}

// DayKey is the server-local calendar date used as the bucket key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
