// Package editor implements the flashcard-set editor as a finite-state
// record driven by events. Machine.Reduce is pure; Controller owns the
// current state and performs the I/O the state asks for.
package editor

import (
	"strings"

	"github.com/andrewpaige1/fliply-api/models"
)

type Phase int

const (
	Empty Phase = iota
	Editing
	Validating
	Submitting
	Saved
	Failed
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Saved:
		return "saved"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Draft is the editable content of one set.
type Draft struct {
	ID          string
	Title       string
	ClassCode   string
	Description string
	IsPublic    bool
	Cards       []models.Flashcard
}

// DraftFromSet starts a draft for editing an existing set.
func DraftFromSet(set models.FlashcardSet) Draft {
	d := Draft{
		ID:          set.ID,
		Title:       set.Title,
		ClassCode:   set.ClassCode,
		Description: set.Description,
		IsPublic:    set.IsPublic,
		Cards:       append([]models.Flashcard(nil), set.Flashcards...),
	}
	if len(d.Cards) == 0 {
		d.Cards = []models.Flashcard{{}}
	}
	return d
}

// Payload is the set sent to the server: trimmed fields, blank cards removed.
func (d Draft) Payload(userID string) models.FlashcardSet {
	return models.FlashcardSet{
		ID:          d.ID,
		Title:       strings.TrimSpace(d.Title),
		ClassCode:   strings.TrimSpace(d.ClassCode),
		Description: strings.TrimSpace(d.Description),
		Flashcards:  models.NonBlank(d.Cards),
		IsPublic:    d.IsPublic,
		UserID:      userID,
	}
}

func (d Draft) hasContent() bool {
	if strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.ClassCode) != "" || strings.TrimSpace(d.Description) != "" {
		return true
	}
	return len(models.NonBlank(d.Cards)) > 0
}

func (d Draft) sameContent(other Draft) bool {
	if d.Title != other.Title || d.ClassCode != other.ClassCode || d.Description != other.Description {
		return false
	}
	if len(d.Cards) != len(other.Cards) {
		return false
	}
	for i := range d.Cards {
		if d.Cards[i] != other.Cards[i] {
			return false
		}
	}
	return true
}

func (d Draft) clone() Draft {
	d.Cards = append([]models.Flashcard(nil), d.Cards...)
	return d
}

// FieldErrors holds the validation message of each field, empty when valid.
type FieldErrors struct {
	Title       string
	ClassCode   string
	Description string
	Cards       string
}

func (e FieldErrors) Empty() bool {
	return e == FieldErrors{}
}

// ExitState tracks a navigation request away from the editor.
type ExitState struct {
	Destination string
	Prompt      bool
}

type State struct {
	Phase  Phase
	Draft  Draft
	Loaded *Draft // the set as it was loaded; nil when creating

	Suggestions []string
	Errors      FieldErrors
	SubmitError string

	// Set on blur with an unknown class code; the code is cleared when the
	// grace period elapses unless a suggestion was picked first.
	PendingBlurReject bool

	Exit ExitState
}

// NewState is a blank editor with a single empty card.
func NewState() State {
	return State{Phase: Empty, Draft: Draft{Cards: []models.Flashcard{{}}}}
}

// Editing reports whether the draft updates an existing set.
func (s State) Editing() bool {
	return s.Loaded != nil
}

// HasUnsavedChanges reports whether leaving now would lose work.
func (s State) HasUnsavedChanges() bool {
	if s.Phase == Saved {
		return false
	}
	if s.Loaded != nil {
		return !s.Draft.sameContent(*s.Loaded)
	}
	return s.Draft.hasContent()
}

func (s State) clone() State {
	s.Draft = s.Draft.clone()
	if s.Loaded != nil {
		loaded := s.Loaded.clone()
		s.Loaded = &loaded
	}
	s.Suggestions = append([]string(nil), s.Suggestions...)
	return s
}
