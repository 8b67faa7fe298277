package models

import "time"

// User is the profile kept for a user identity. ID is the identity issued by
// the auth provider (the token subject).
type User struct {
	ID          string `gorm:"primaryKey;size:128" json:"id"`
	Username    string `gorm:"size:100" json:"username"`
	DisplayName string `gorm:"size:100" json:"displayName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
