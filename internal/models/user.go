// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultProfilePic is the sentinel filename used until a user uploads
// a profile image.
const DefaultProfilePic = "default.png"

// User represents a registered account. Email is the login key and is
// unique at the storage level; all other lookups key on ID.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"not null" json:"username"`
	Name       string         `gorm:"not null" json:"name"`
	Age        int            `json:"age"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	ProfilePic string         `gorm:"default:default.png" json:"profile_pic"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Posts is the owned-post list, ordered by creation time.
	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
