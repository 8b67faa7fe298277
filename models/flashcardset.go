package models

import (
	"time"
)

// MaxDescriptionLength is the longest description, in characters, a set may carry.
const MaxDescriptionLength = 500

const (
	PublicSetIcon  = "/FliplyPNGs/public_flashcard_icon.png"
	PrivateSetIcon = "/FliplyPNGs/private_flashcard.png"
)

// FlashcardSet represents a collection of flashcards owned by a single user
type FlashcardSet struct {
	ID          string      `gorm:"primaryKey;size:100" json:"id"`
	Title       string      `gorm:"not null;size:200" json:"title"`
	ClassCode   string      `gorm:"not null;size:50;index:idx_class_public" json:"classCode"`
	Description string      `gorm:"size:500" json:"description"`
	Flashcards  []Flashcard `gorm:"serializer:json;not null" json:"flashcards"`
	IsPublic    bool        `gorm:"default:false;index:idx_class_public" json:"isPublic"`
	Icon        string      `gorm:"size:100" json:"icon"`

	UserID string `gorm:"not null;size:128;index:idx_owner_derived;uniqueIndex:idx_owner_original" json:"userId"`
	// Set only on copies made through save; points at the set it was copied from.
	OriginalSetID *string `gorm:"size:100;uniqueIndex:idx_owner_original" json:"originalSetId,omitempty"`
	IsDerived     bool    `gorm:"default:false;index:idx_owner_derived" json:"isDerived"`
	NumCards      int     `gorm:"not null;default:0" json:"numCards"`

	// Timestamps are assigned by the repository's clock.
	CreatedAt time.Time `gorm:"index;autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// SetIcon returns the display icon for a set with the given visibility.
func SetIcon(isPublic bool) string {
	if isPublic {
		return PublicSetIcon
	}
	return PrivateSetIcon
}

// SetWithCreator is a public set enriched with its owner's display name.
type SetWithCreator struct {
	FlashcardSet
	CreatedBy string `json:"createdBy"`
}
