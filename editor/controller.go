package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andrewpaige1/fliply-api/client"
	"github.com/andrewpaige1/fliply-api/models"
)

// DefaultBlurGrace is how long a rejected class code stays visible before it is cleared.
const DefaultBlurGrace = 1500 * time.Millisecond

const (
	msgLoginRequired   = "You must be logged in to save a set"
	msgConnectionError = "Failed to save flashcard set. Please check your connection and try again."
)

var (
	ErrSubmitInProgress = errors.New("editor: submit already in progress")
	ErrInvalidDraft     = errors.New("editor: draft failed validation")
	ErrNotLoggedIn      = errors.New("editor: no user to save as")
)

// SetWriter persists drafts. *client.SetsClient implements it.
type SetWriter interface {
	Create(ctx context.Context, set *models.FlashcardSet) (string, error)
	Update(ctx context.Context, id string, set *models.FlashcardSet) (string, error)
}

// ExitChoice answers the unsaved-changes prompt.
type ExitChoice int

const (
	CancelExit ExitChoice = iota
	SaveAndExit
	ExitWithoutSaving
)

// Controller owns the editor state for one user and runs the side effects
// the machine cannot: submits, the blur grace timer and the draft cache.
type Controller struct {
	mu      sync.Mutex
	machine Machine
	state   State

	sets   SetWriter
	drafts DraftStore
	userID string

	newID     func() string
	grace     time.Duration
	afterFunc func(time.Duration, func()) func() bool
	stopBlur  func() bool
	// blurGen identifies the latest scheduled grace timer; older timers
	// that fire anyway are ignored.
	blurGen uint64
}

type ControllerOption func(*Controller)

// WithBlurGrace overrides DefaultBlurGrace.
func WithBlurGrace(d time.Duration) ControllerOption {
	return func(c *Controller) { c.grace = d }
}

// WithScheduler replaces time.AfterFunc for the blur timer. The returned
// func cancels the scheduled call.
func WithScheduler(after func(time.Duration, func()) func() bool) ControllerOption {
	return func(c *Controller) { c.afterFunc = after }
}

// WithDraftIDs replaces the generator of ids for new sets.
func WithDraftIDs(newID func() string) ControllerOption {
	return func(c *Controller) { c.newID = newID }
}

// NewController starts an editor for userID. A draft found in drafts is
// loaded as the set being edited.
func NewController(userID string, codes Lookup, sets SetWriter, drafts DraftStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		machine: Machine{Codes: codes},
		state:   NewState(),
		sets:    sets,
		drafts:  drafts,
		userID:  userID,
		newID:   uuid.NewString,
		grace:   DefaultBlurGrace,
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if drafts != nil {
		if d, ok := drafts.Load(); ok {
			c.state = c.machine.Reduce(c.state, Loaded{Draft: d})
		}
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Dispatch applies ev and returns the new state.
func (c *Controller) Dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(ev)
}

func (c *Controller) apply(ev Event) State {
	c.state = c.machine.Reduce(c.state, ev)
	if e, ok := ev.(Loaded); ok && c.drafts != nil {
		c.drafts.Save(e.Draft)
	}
	return c.state.clone()
}

// Blur validates the class code on focus loss. An unknown code is cleared
// once the grace period passes, unless a suggestion is picked first.
func (c *Controller) Blur() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopBlur != nil {
		c.stopBlur()
		c.stopBlur = nil
	}
	c.blurGen++
	st := c.apply(ClassCodeBlurred{})
	if st.PendingBlurReject {
		gen := c.blurGen
		c.stopBlur = c.afterFunc(c.grace, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if gen != c.blurGen {
				return
			}
			c.stopBlur = nil
			c.apply(BlurGraceElapsed{})
		})
	}
	return st
}

// Submit validates the draft and saves it as public or private. The
// returned error is ErrSubmitInProgress, ErrNotLoggedIn, ErrInvalidDraft or
// the error from the SetWriter; the state always reflects the outcome.
func (c *Controller) Submit(ctx context.Context, isPublic bool) (State, error) {
	c.mu.Lock()
	if c.state.Phase == Submitting {
		st := c.state.clone()
		c.mu.Unlock()
		return st, ErrSubmitInProgress
	}
	if c.userID == "" {
		st := c.apply(SubmitBlocked{Message: msgLoginRequired})
		c.mu.Unlock()
		return st, ErrNotLoggedIn
	}

	st := c.apply(SubmitRequested{IsPublic: isPublic})
	if st.Phase != Submitting {
		c.mu.Unlock()
		return st, ErrInvalidDraft
	}

	updating := st.Editing()
	draft := st.Draft
	if !updating {
		draft.ID = c.newID()
	}
	payload := draft.Payload(c.userID)
	c.mu.Unlock()

	var (
		id  string
		err error
	)
	if updating {
		id, err = c.sets.Update(ctx, draft.ID, &payload)
	} else {
		id, err = c.sets.Create(ctx, &payload)
	}
	if id == "" {
		id = draft.ID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("setId", draft.ID).Bool("update", updating).Msg("Submit: failed to save set")
		return c.apply(SubmitFailed{Message: failureMessage(updating, err)}), err
	}

	if c.drafts != nil {
		c.drafts.Clear()
	}
	log.Info().Str("setId", id).Bool("update", updating).Msg("Submit: set saved")
	return c.apply(SubmitSucceeded{ID: id}), nil
}

// RequestExit asks to leave for dest. When the returned state has no
// prompt open the caller may navigate right away.
func (c *Controller) RequestExit(dest string) State {
	return c.Dispatch(ExitRequested{Destination: dest})
}

// ResolveExit answers the unsaved-changes prompt. proceed reports whether
// the caller should navigate to the requested destination. A failed
// save leaves the prompt open.
func (c *Controller) ResolveExit(ctx context.Context, choice ExitChoice) (st State, proceed bool, err error) {
	switch choice {
	case SaveAndExit:
		c.mu.Lock()
		isPublic := c.state.Draft.IsPublic
		dest := c.state.Exit.Destination
		c.mu.Unlock()

		st, err = c.Submit(ctx, isPublic)
		if err != nil {
			return st, false, err
		}
		st.Exit.Destination = dest
		return st, true, nil

	case ExitWithoutSaving:
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.drafts != nil {
			c.drafts.Clear()
		}
		c.state.Exit.Prompt = false
		return c.state.clone(), true, nil
	}

	return c.Dispatch(ExitCancelled{}), false, nil
}

func failureMessage(updating bool, err error) string {
	verb := "save"
	if updating {
		verb = "update"
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return msgConnectionError
	}
	if apiErr.Message != "" {
		return fmt.Sprintf("Failed to %s flashcard set. %s", verb, apiErr.Message)
	}
	return fmt.Sprintf("Failed to %s flashcard set. Server returned %s.", verb, apiErr.Status)
}
