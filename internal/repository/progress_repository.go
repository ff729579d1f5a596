package repository

import (
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository owns the per-user-per-day buckets.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindForUpdate locks today's bucket for the rest of the transaction.
func (r *ProgressRepository) FindForUpdate(tx *gorm.DB, userID uint, date string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date = ?", userID, date).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CreateIgnore inserts the bucket, tolerating a concurrent insert of the
// same (user, date) key. Returns whether this call inserted.
func (r *ProgressRepository) CreateIgnore(db *gorm.DB, progress *model.UserProgress) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(progress)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProgressRepository) Create(tx *gorm.DB, progress *model.UserProgress) error {
	return tx.Create(progress).Error
}

func (r *ProgressRepository) Update(tx *gorm.DB, progress *model.UserProgress) error {
	return tx.Save(progress).Error
}

// ListRange returns the buckets for [from, to] ascending by date.
func (r *ProgressRepository) ListRange(userID uint, from, to string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").Find(&rows).Error
	return rows, err
}
