package service

import (
	"errors"
	"fmt"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"
	"studytrack_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

// StatisticsService orchestrates submission recording and statistics reads.
// Each recorded event runs in one transaction: the immutable submission row,
// the aggregate update and the day bucket either all commit or none do.
type StatisticsService struct {
	UserRepo       *repository.UserRepository
	StatsRepo      *repository.StatisticsRepository
	ProgressRepo   *repository.ProgressRepository
	SubmissionRepo *repository.SubmissionRepository
	DB             *gorm.DB
}

func NewStatisticsService(
	userRepo *repository.UserRepository,
	statsRepo *repository.StatisticsRepository,
	progressRepo *repository.ProgressRepository,
	submissionRepo *repository.SubmissionRepository,
	db *gorm.DB,
) *StatisticsService {
	return &StatisticsService{
		UserRepo:       userRepo,
		StatsRepo:      statsRepo,
		ProgressRepo:   progressRepo,
		SubmissionRepo: submissionRepo,
		DB:             db,
	}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", util.ErrValidation, msg)
}

func storageError(err error) error {
	return fmt.Errorf("%w: %v", util.ErrStorageFailure, err)
}

// RecordTaskResult persists one task attempt and folds it into the user's
// aggregate and today's bucket. The aggregate row is read under a row lock
// so concurrent submissions for the same user serialize instead of losing
// increments. A user with no aggregate yet gets one created from the
// zero-valued default inside the same transaction.
func (s *StatisticsService) RecordTaskResult(userID uint, req *TaskSubmissionRequest) (*model.TaskSubmission, error) {
	if err := req.Validate(); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("task", "rejected").Inc()
		return nil, err
	}

	now := time.Now()
	ev := TaskEvent{
		Correct:      *req.IsCorrect,
		Score:        req.Score,
		TimeSpent:    req.TimeSpent,
		Difficulty:   req.Difficulty,
		Topic:        req.Topic,
		QuestionType: req.QuestionType,
	}

	submission := &model.TaskSubmission{
		UserID:       userID,
		TaskID:       req.TaskID,
		SheetID:      req.SheetID,
		IsCorrect:    ev.Correct,
		Score:        req.Score,
		TimeSpent:    req.TimeSpent,
		Difficulty:   req.Difficulty,
		Topic:        req.Topic,
		QuestionType: req.QuestionType,
		UserAnswer:   req.UserAnswer,
		UserSolution: req.UserSolution,
		SubmittedAt:  now,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.SubmissionRepo.CreateTask(tx, submission); err != nil {
			return err
		}

		if err := s.applyToAggregate(tx, userID, func(prev model.UserStatistics) model.UserStatistics {
			return ApplyTaskEvent(prev, ev, now)
		}); err != nil {
			return err
		}

		return s.applyToDay(tx, userID, now, func(prev *model.UserProgress) model.UserProgress {
			return ApplyTaskToDay(prev, userID, DayKey(now), ev.Correct, ev.TimeSpent)
		})
	})
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("task", "failed").Inc()
		return nil, storageError(err)
	}

	monitoring.SubmissionCounter.WithLabelValues("task", "recorded").Inc()
	return submission, nil
}

// RecordSheetResult persists one sheet attempt; same transactional shape as
// the task path, with correctness derived from the accuracy threshold.
func (s *StatisticsService) RecordSheetResult(userID uint, req *SheetSubmissionRequest) (*model.SheetSubmission, error) {
	if err := req.Validate(); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("sheet", "rejected").Inc()
		return nil, err
	}

	now := time.Now()
	ev := SheetEvent{
		TotalTasks:     req.TotalTasks,
		CorrectTasks:   req.CorrectTasks,
		TotalTimeSpent: req.TotalTimeSpent,
	}
	accuracy := ev.Accuracy()

	avgTime := float64(0)
	if req.AverageTimePerTask != nil {
		avgTime = *req.AverageTimePerTask
	} else {
		avgTime = util.Round2(float64(req.TotalTimeSpent) / float64(req.TotalTasks))
	}

	submission := &model.SheetSubmission{
		UserID:             userID,
		SheetID:            req.SheetID,
		TotalTasks:         req.TotalTasks,
		CorrectTasks:       req.CorrectTasks,
		Accuracy:           accuracy,
		TotalTimeSpent:     req.TotalTimeSpent,
		AverageTimePerTask: avgTime,
		SubmittedAt:        now,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.SubmissionRepo.CreateSheet(tx, submission); err != nil {
			return err
		}

		if err := s.applyToAggregate(tx, userID, func(prev model.UserStatistics) model.UserStatistics {
			return ApplySheetEvent(prev, ev, now)
		}); err != nil {
			return err
		}

		return s.applyToDay(tx, userID, now, func(prev *model.UserProgress) model.UserProgress {
			return ApplySheetToDay(prev, userID, DayKey(now), accuracy, ev.TotalTimeSpent)
		})
	})
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("sheet", "failed").Inc()
		return nil, storageError(err)
	}

	monitoring.SubmissionCounter.WithLabelValues("sheet", "recorded").Inc()
	return submission, nil
}

// applyToAggregate reads the locked aggregate, runs the transition and
// writes the result back. When no row exists yet the transition runs
// against the in-memory default and the result is inserted instead.
func (s *StatisticsService) applyToAggregate(tx *gorm.DB, userID uint, apply func(model.UserStatistics) model.UserStatistics) error {
	prev, err := s.StatsRepo.FindByUserForUpdate(tx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		next := apply(model.DefaultStatistics(userID))
		return s.StatsRepo.Create(tx, &next)
	}
	if err != nil {
		return err
	}

	next := apply(*prev)
	return s.StatsRepo.Update(tx, &next)
}

// applyToDay does the same read-transition-write against today's bucket.
func (s *StatisticsService) applyToDay(tx *gorm.DB, userID uint, now time.Time, apply func(*model.UserProgress) model.UserProgress) error {
	date := DayKey(now)
	prev, err := s.ProgressRepo.FindForUpdate(tx, userID, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		day := apply(nil)
		return s.ProgressRepo.Create(tx, &day)
	}
	if err != nil {
		return err
	}

	day := apply(prev)
	return s.ProgressRepo.Update(tx, &day)
}

// EnsureInitialized is the race-safe get-or-create for a fresh user's
// aggregate and today's bucket. Two dashboards loading at once both land on
// the same single row: the loser of the insert race re-reads the winner's.
func (s *StatisticsService) EnsureInitialized(userID uint) (*model.UserStatistics, error) {
	exists, err := s.UserRepo.Exists(s.DB, userID)
	if err != nil {
		return nil, storageError(err)
	}
	if !exists {
		// Stale credential: the identity no longer maps to a stored user.
		// Checked before any insert to avoid violating the FK.
		return nil, util.ErrUserNotFound
	}

	if err := s.UserRepo.EnsureProfile(s.DB, userID); err != nil {
		hasProfile, checkErr := s.UserRepo.HasProfile(s.DB, userID)
		if checkErr != nil || !hasProfile {
			return nil, util.ErrProfileNotFound
		}
	}

	stats := model.DefaultStatistics(userID)
	created, err := s.StatsRepo.CreateIgnore(s.DB, &stats)
	if err != nil {
		return nil, storageError(err)
	}
	if !created {
		// A concurrent writer won the insert; read the row it created.
		existing, err := s.StatsRepo.FindByUser(s.DB, userID)
		if err != nil {
			return nil, storageError(err)
		}
		return existing, nil
	}

	today := model.UserProgress{UserID: userID, Date: DayKey(time.Now())}
	if _, err := s.ProgressRepo.CreateIgnore(s.DB, &today); err != nil {
		return nil, storageError(err)
	}

	return &stats, nil
}

// GetStatistics returns the current aggregate, lazily initializing it for
// users that have never submitted or read before.
func (s *StatisticsService) GetStatistics(userID uint) (*model.UserStatistics, error) {
	stats, err := s.StatsRepo.FindByUser(s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.EnsureInitialized(userID)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return stats, nil
}

const (
	DefaultProgressDays = 30
	MaxProgressDays     = 365
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// RecentSubmissions returns the latest raw submission records of both kinds,
// newest first.
func (s *StatisticsService) RecentSubmissions(userID uint, limit int) ([]model.TaskSubmission, []model.SheetSubmission, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 1 || limit > MaxRecentLimit {
		return nil, nil, validationError(fmt.Sprintf("limit must be between 1 and %d", MaxRecentLimit))
	}

	tasks, err := s.SubmissionRepo.ListTasksByUser(userID, limit)
	if err != nil {
		return nil, nil, storageError(err)
	}
	sheets, err := s.SubmissionRepo.ListSheetsByUser(userID, limit)
	if err != nil {
		return nil, nil, storageError(err)
	}
	return tasks, sheets, nil
}

// GetProgress returns the day buckets for the trailing N days (today
// inclusive), ascending by date. Days outside 1..365 are rejected.
func (s *StatisticsService) GetProgress(userID uint, days int) ([]model.UserProgress, error) {
	if days == 0 {
		days = DefaultProgressDays
	}
	if days < 1 || days > MaxProgressDays {
		return nil, validationError(fmt.Sprintf("days must be between 1 and %d", MaxProgressDays))
	}

	now := time.Now()
	to := DayKey(now)
	from := DayKey(now.AddDate(0, 0, -(days - 1)))

	rows, err := s.ProgressRepo.ListRange(userID, from, to)
	if err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}
