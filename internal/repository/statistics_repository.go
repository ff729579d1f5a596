package repository

import (
	"studytrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatisticsRepository owns the per-user aggregate row. Every method takes
// the *gorm.DB it should run on so callers can pass a transaction handle.
type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

func (r *StatisticsRepository) FindByUser(db *gorm.DB, userID uint) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindByUserForUpdate locks the aggregate row for the rest of the
// transaction. Concurrent submissions for the same user serialize here
// instead of both reading the same stale aggregate and losing an update.
func (r *StatisticsRepository) FindByUserForUpdate(tx *gorm.DB, userID uint) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateIgnore inserts the aggregate, silently no-oping when another writer
// already created the row for this user. Returns whether this call inserted.
func (r *StatisticsRepository) CreateIgnore(db *gorm.DB, stats *model.UserStatistics) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(stats)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *StatisticsRepository) Create(tx *gorm.DB, stats *model.UserStatistics) error {
	return tx.Create(stats).Error
}

func (r *StatisticsRepository) Update(tx *gorm.DB, stats *model.UserStatistics) error {
	return tx.Save(stats).Error
}
