package models

import (
	"time"
)

// User is owned by the wider platform; messaging only reads it.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"-"`
	ProfileImage string `json:"profile_image"`
	Role         string `gorm:"not null;default:member" json:"role"`
}

// UserProfile is the public projection used to decorate directory results.
type UserProfile struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:           u.ID,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
	}
}
