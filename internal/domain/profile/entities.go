package profile

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Profile struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID       string         `gorm:"size:32;uniqueIndex:ux_profiles_user_id_active" json:"user_id"`
	Email        string         `gorm:"size:255;uniqueIndex:ux_profiles_email_active" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	FullName     string         `gorm:"size:255" json:"full_name"`
	Contact      string         `gorm:"size:64" json:"contact"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string { return "profiles" }
