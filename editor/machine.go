package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andrewpaige1/fliply-api/classcodes"
	"github.com/andrewpaige1/fliply-api/models"
)

const (
	msgTitleRequired     = "Please provide a title for your flashcard set"
	msgClassCodeRequired = "Please select a valid class code"
	msgClassCodeUnknown  = "Invalid class code! Please select from the list"
	msgClassCodeFromList = "Please select a valid class code from the list"
	msgCardsRequired     = "You need to add at least one flashcard with content"
)

var msgDescriptionTooLong = fmt.Sprintf("Description must be %d characters or fewer", models.MaxDescriptionLength)

// Lookup answers class-code questions. *classcodes.Catalog implements it.
type Lookup interface {
	Suggest(prefix string, limit int) []string
	Contains(code string) bool
}

// Event is an input to the editor.
type Event interface {
	isEvent()
}

type (
	// Loaded replaces the editor with an existing set.
	Loaded struct{ Draft Draft }

	TitleChanged       struct{ Title string }
	ClassCodeChanged   struct{ Value string }
	SuggestionSelected struct{ Code string }
	ClassCodeBlurred   struct{}
	BlurGraceElapsed   struct{}
	DescriptionChanged struct{ Description string }

	CardAdded   struct{}
	CardChanged struct {
		Index    int
		Question string
		Answer   string
	}
	CardDeleted struct{ Index int }

	SubmitRequested struct{ IsPublic bool }
	SubmitSucceeded struct{ ID string }
	SubmitFailed    struct{ Message string }
	// SubmitBlocked reports a submit refused before validation, such as
	// an anonymous user.
	SubmitBlocked struct{ Message string }

	ExitRequested struct{ Destination string }
	ExitCancelled struct{}
)

func (Loaded) isEvent()             {}
func (TitleChanged) isEvent()       {}
func (ClassCodeChanged) isEvent()   {}
func (SuggestionSelected) isEvent() {}
func (ClassCodeBlurred) isEvent()   {}
func (BlurGraceElapsed) isEvent()   {}
func (DescriptionChanged) isEvent() {}
func (CardAdded) isEvent()          {}
func (CardChanged) isEvent()        {}
func (CardDeleted) isEvent()        {}
func (SubmitRequested) isEvent()    {}
func (SubmitSucceeded) isEvent()    {}
func (SubmitFailed) isEvent()       {}
func (SubmitBlocked) isEvent()      {}
func (ExitRequested) isEvent()      {}
func (ExitCancelled) isEvent()      {}

// Machine computes editor transitions against a set of known class codes.
type Machine struct {
	Codes Lookup
}

// Reduce returns the state that follows s after ev. s is not modified.
func (m Machine) Reduce(s State, ev Event) State {
	s = s.clone()

	switch e := ev.(type) {
	case Loaded:
		loaded := e.Draft.clone()
		if len(loaded.Cards) == 0 {
			loaded.Cards = []models.Flashcard{{}}
		}
		next := NewState()
		next.Phase = Editing
		next.Draft = loaded.clone()
		next.Loaded = &loaded
		return next

	case TitleChanged:
		s.Draft.Title = e.Title
		s.Errors.Title = ""
		return edited(s)

	case ClassCodeChanged:
		code := strings.ToUpper(strings.TrimSpace(e.Value))
		s.Draft.ClassCode = code
		s.Errors.ClassCode = ""
		s.PendingBlurReject = false
		s.Suggestions = nil
		if code != "" && m.Codes != nil {
			s.Suggestions = m.Codes.Suggest(code, classcodes.SuggestionLimit)
		}
		return edited(s)

	case SuggestionSelected:
		s.Draft.ClassCode = e.Code
		s.Suggestions = nil
		s.Errors.ClassCode = ""
		s.PendingBlurReject = false
		return edited(s)

	case ClassCodeBlurred:
		code := strings.TrimSpace(s.Draft.ClassCode)
		if code != "" && !m.known(code) {
			s.Errors.ClassCode = msgClassCodeFromList
			s.PendingBlurReject = true
		}
		return s

	case BlurGraceElapsed:
		if s.PendingBlurReject {
			s.Draft.ClassCode = ""
			s.Suggestions = nil
			s.PendingBlurReject = false
		}
		return s

	case DescriptionChanged:
		s.Draft.Description = e.Description
		s.Errors.Description = ""
		return edited(s)

	case CardAdded:
		s.Draft.Cards = append(s.Draft.Cards, models.Flashcard{})
		s.Errors.Cards = ""
		return edited(s)

	case CardChanged:
		if e.Index < 0 || e.Index >= len(s.Draft.Cards) {
			return s
		}
		s.Draft.Cards[e.Index] = models.Flashcard{Question: e.Question, Answer: e.Answer}
		s.Errors.Cards = ""
		return edited(s)

	case CardDeleted:
		if e.Index < 0 || e.Index >= len(s.Draft.Cards) {
			return s
		}
		if len(s.Draft.Cards) <= 1 {
			s.Draft.Cards = []models.Flashcard{{}}
		} else {
			s.Draft.Cards = append(s.Draft.Cards[:e.Index], s.Draft.Cards[e.Index+1:]...)
		}
		return edited(s)

	case SubmitRequested:
		if s.Phase == Submitting {
			return s
		}
		s.Draft.IsPublic = e.IsPublic
		s.Phase = Validating
		s.Errors = m.Validate(s.Draft)
		if !s.Errors.Empty() {
			s.Phase = Editing
			return s
		}
		s.Phase = Submitting
		s.SubmitError = ""
		s.Suggestions = nil
		return s

	case SubmitSucceeded:
		if s.Phase != Submitting {
			return s
		}
		s.Phase = Saved
		s.Draft.ID = e.ID
		s.Draft.Cards = models.NonBlank(s.Draft.Cards)
		saved := s.Draft.clone()
		s.Loaded = &saved
		s.Exit = ExitState{}
		return s

	case SubmitFailed:
		if s.Phase != Submitting {
			return s
		}
		s.Phase = Failed
		s.SubmitError = e.Message
		return s

	case SubmitBlocked:
		if s.Phase == Submitting {
			return s
		}
		s.Phase = Failed
		s.SubmitError = e.Message
		return s

	case ExitRequested:
		s.Exit = ExitState{Destination: e.Destination, Prompt: s.HasUnsavedChanges()}
		return s

	case ExitCancelled:
		s.Exit = ExitState{}
		return s
	}

	return s
}

// Validate checks a draft before it is submitted.
func (m Machine) Validate(d Draft) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(d.Title) == "" {
		errs.Title = msgTitleRequired
	}

	code := strings.TrimSpace(d.ClassCode)
	switch {
	case code == "":
		errs.ClassCode = msgClassCodeRequired
	case !m.known(code):
		errs.ClassCode = msgClassCodeUnknown
	}

	if utf8.RuneCountInString(strings.TrimSpace(d.Description)) > models.MaxDescriptionLength {
		errs.Description = msgDescriptionTooLong
	}

	if len(models.NonBlank(d.Cards)) == 0 {
		errs.Cards = msgCardsRequired
	}
	return errs
}

func (m Machine) known(code string) bool {
	return m.Codes != nil && m.Codes.Contains(code)
}

// edited moves a resting editor back to Editing after a change to the draft.
func edited(s State) State {
	switch s.Phase {
	case Empty, Failed, Saved:
		s.Phase = Editing
	}
	return s
}
