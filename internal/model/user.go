package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Language  string    `gorm:"size:10;default:'en'" json:"language"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile is a dependent row of users; statistics rows reference it
// indirectly, so lazy initialization has to make sure it exists before
// creating the aggregate.
type UserProfile struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Nickname string `gorm:"size:100" json:"nickname"`
	Bio      string `gorm:"size:500" json:"bio"`
	Grade    string `gorm:"size:50" json:"grade"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
