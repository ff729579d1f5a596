package repository

import (
	"studytrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}

// Exists reports whether the user row is present, without loading it.
func (r *UserRepository) Exists(db *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

// EnsureProfile inserts the dependent profile row if it does not exist yet.
// A concurrent insert of the same row is absorbed by the conflict clause.
func (r *UserRepository) EnsureProfile(db *gorm.DB, userID uint) error {
	profile := model.UserProfile{UserID: userID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error
}

// HasProfile reports whether the dependent profile row exists.
func (r *UserRepository) HasProfile(db *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := db.Model(&model.UserProfile{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
