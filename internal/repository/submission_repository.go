package repository

import (
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
)

// SubmissionRepository appends immutable submission records. There is no
// update or delete: a submission is written once and never touched again.
type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) CreateTask(tx *gorm.DB, submission *model.TaskSubmission) error {
	return tx.Create(submission).Error
}

func (r *SubmissionRepository) CreateSheet(tx *gorm.DB, submission *model.SheetSubmission) error {
	return tx.Create(submission).Error
}

func (r *SubmissionRepository) ListTasksByUser(userID uint, limit int) ([]model.TaskSubmission, error) {
	var rows []model.TaskSubmission
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *SubmissionRepository) ListSheetsByUser(userID uint, limit int) ([]model.SheetSubmission, error) {
	var rows []model.SheetSubmission
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
