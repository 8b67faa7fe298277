package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/fliply-api/classcodes"
	"github.com/andrewpaige1/fliply-api/models"
)

var testCodes = classcodes.New([]string{
	"BIO101", "BIO102", "BIO110", "BIO200", "BIO201", "BIO300", "CHEM200", "CS101",
})

func testMachine() Machine {
	return Machine{Codes: testCodes}
}

func run(m Machine, s State, events ...Event) State {
	for _, ev := range events {
		s = m.Reduce(s, ev)
	}
	return s
}

func validDraftEvents() []Event {
	return []Event{
		TitleChanged{Title: "Cells"},
		ClassCodeChanged{Value: "bio101"},
		CardChanged{Index: 0, Question: "What is a cell?", Answer: "The unit of life"},
	}
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, Empty, s.Phase)
	assert.Equal(t, []models.Flashcard{{}}, s.Draft.Cards)
	assert.False(t, s.Editing())
	assert.False(t, s.HasUnsavedChanges())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(), CardAdded{})
	before := s.clone()

	_ = m.Reduce(s, CardChanged{Index: 1, Question: "Q"})
	_ = m.Reduce(s, CardDeleted{Index: 0})

	assert.Equal(t, before, s)
}

func TestReduce_EditMovesToEditing(t *testing.T) {
	s := testMachine().Reduce(NewState(), TitleChanged{Title: "Cells"})
	assert.Equal(t, Editing, s.Phase)
	assert.Equal(t, "Cells", s.Draft.Title)
	assert.True(t, s.HasUnsavedChanges())
}

func TestReduce_Suggestions(t *testing.T) {
	m := testMachine()

	s := m.Reduce(NewState(), ClassCodeChanged{Value: " bio"})
	assert.Equal(t, "BIO", s.Draft.ClassCode)
	assert.Equal(t, []string{"BIO101", "BIO102", "BIO110", "BIO200", "BIO201"}, s.Suggestions)

	s = m.Reduce(s, ClassCodeChanged{Value: "bio1"})
	assert.Equal(t, []string{"BIO101", "BIO102", "BIO110"}, s.Suggestions)

	s = m.Reduce(s, ClassCodeChanged{Value: "xyz"})
	assert.Empty(t, s.Suggestions)

	s = m.Reduce(s, ClassCodeChanged{Value: ""})
	assert.Empty(t, s.Suggestions)
}

func TestReduce_SuggestionSelected(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(), ClassCodeChanged{Value: "bio"}, SuggestionSelected{Code: "BIO102"})
	assert.Equal(t, "BIO102", s.Draft.ClassCode)
	assert.Empty(t, s.Suggestions)
	assert.Empty(t, s.Errors.ClassCode)
}

func TestReduce_BlurKnownCode(t *testing.T) {
	s := run(testMachine(), NewState(), ClassCodeChanged{Value: "cs101"}, ClassCodeBlurred{})
	assert.False(t, s.PendingBlurReject)
	assert.Empty(t, s.Errors.ClassCode)
	assert.Equal(t, "CS101", s.Draft.ClassCode)
}

func TestReduce_BlurEmptyCode(t *testing.T) {
	s := run(testMachine(), NewState(), ClassCodeBlurred{})
	assert.False(t, s.PendingBlurReject)
	assert.Empty(t, s.Errors.ClassCode)
}

func TestReduce_BlurUnknownCodeIsClearedAfterGrace(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(), ClassCodeChanged{Value: "bio"}, ClassCodeBlurred{})
	assert.True(t, s.PendingBlurReject)
	assert.Equal(t, msgClassCodeFromList, s.Errors.ClassCode)
	assert.Equal(t, "BIO", s.Draft.ClassCode)

	s = m.Reduce(s, BlurGraceElapsed{})
	assert.False(t, s.PendingBlurReject)
	assert.Equal(t, "", s.Draft.ClassCode)
	assert.Empty(t, s.Suggestions)
}

func TestReduce_SuggestionWithinGraceKeepsCode(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(),
		ClassCodeChanged{Value: "bio"},
		ClassCodeBlurred{},
		SuggestionSelected{Code: "BIO200"},
		BlurGraceElapsed{},
	)
	assert.Equal(t, "BIO200", s.Draft.ClassCode)
	assert.Empty(t, s.Errors.ClassCode)
}

func TestReduce_Cards(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(),
		CardAdded{},
		CardAdded{},
		CardChanged{Index: 0, Question: "Q0"},
		CardChanged{Index: 2, Question: "Q2", Answer: "A2"},
	)
	require.Len(t, s.Draft.Cards, 3)

	s = m.Reduce(s, CardDeleted{Index: 1})
	assert.Equal(t, []models.Flashcard{{Question: "Q0"}, {Question: "Q2", Answer: "A2"}}, s.Draft.Cards)

	// out of range is ignored
	assert.Equal(t, s, m.Reduce(s, CardChanged{Index: 5, Question: "x"}))
	assert.Equal(t, s, m.Reduce(s, CardDeleted{Index: -1}))

	s = run(m, s, CardDeleted{Index: 0}, CardDeleted{Index: 0})
	assert.Equal(t, []models.Flashcard{{}}, s.Draft.Cards, "deleting the last card leaves one blank slot")
}

func TestValidate(t *testing.T) {
	m := testMachine()

	errs := m.Validate(NewState().Draft)
	assert.Equal(t, FieldErrors{
		Title:     msgTitleRequired,
		ClassCode: msgClassCodeRequired,
		Cards:     msgCardsRequired,
	}, errs)

	errs = m.Validate(Draft{
		Title:       "Cells",
		ClassCode:   "BIO999",
		Description: strings.Repeat("x", models.MaxDescriptionLength+1),
		Cards:       []models.Flashcard{{Question: "  "}, {Answer: "A"}},
	})
	assert.Equal(t, FieldErrors{
		ClassCode:   msgClassCodeUnknown,
		Description: "Description must be 500 characters or fewer",
	}, errs)

	errs = m.Validate(Draft{Title: "Cells", ClassCode: "bio101", Cards: []models.Flashcard{{Question: "Q"}}})
	assert.True(t, errs.Empty())
}

func TestReduce_SubmitInvalidStaysEditing(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(), TitleChanged{Title: "Cells"}, SubmitRequested{IsPublic: true})
	assert.Equal(t, Editing, s.Phase)
	assert.Equal(t, msgClassCodeRequired, s.Errors.ClassCode)
	assert.Equal(t, msgCardsRequired, s.Errors.Cards)

	s = m.Reduce(s, ClassCodeChanged{Value: "bio101"})
	assert.Empty(t, s.Errors.ClassCode, "editing a field clears its error")
	assert.Equal(t, msgCardsRequired, s.Errors.Cards)
}

func TestReduce_SubmitLifecycle(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(), validDraftEvents()...)

	s = m.Reduce(s, SubmitRequested{IsPublic: true})
	require.Equal(t, Submitting, s.Phase)
	assert.True(t, s.Draft.IsPublic)

	again := m.Reduce(s, SubmitRequested{IsPublic: false})
	assert.Equal(t, s, again, "a second submit while submitting is ignored")

	failed := m.Reduce(s, SubmitFailed{Message: "boom"})
	assert.Equal(t, Failed, failed.Phase)
	assert.Equal(t, "boom", failed.SubmitError)

	retry := m.Reduce(failed, SubmitRequested{IsPublic: true})
	assert.Equal(t, Submitting, retry.Phase)
	assert.Empty(t, retry.SubmitError)

	saved := m.Reduce(retry, SubmitSucceeded{ID: "set-1"})
	assert.Equal(t, Saved, saved.Phase)
	assert.Equal(t, "set-1", saved.Draft.ID)
	require.NotNil(t, saved.Loaded)
	assert.True(t, saved.Editing())
	assert.False(t, saved.HasUnsavedChanges())

	edited := m.Reduce(saved, TitleChanged{Title: "Cells 2"})
	assert.Equal(t, Editing, edited.Phase)
	assert.True(t, edited.HasUnsavedChanges())
}

func TestReduce_ResultEventsOutsideSubmitAreIgnored(t *testing.T) {
	m := testMachine()
	s := run(m, NewState(), validDraftEvents()...)
	assert.Equal(t, s, m.Reduce(s, SubmitSucceeded{ID: "x"}))
	assert.Equal(t, s, m.Reduce(s, SubmitFailed{Message: "x"}))
}

func TestReduce_SubmitBlocked(t *testing.T) {
	s := testMachine().Reduce(NewState(), SubmitBlocked{Message: msgLoginRequired})
	assert.Equal(t, Failed, s.Phase)
	assert.Equal(t, msgLoginRequired, s.SubmitError)
}

func TestReduce_LoadedDraft(t *testing.T) {
	m := testMachine()
	set := models.FlashcardSet{
		ID:         "s1",
		Title:      "Cells",
		ClassCode:  "BIO101",
		IsPublic:   true,
		Flashcards: []models.Flashcard{{Question: "Q", Answer: "A"}},
	}
	s := m.Reduce(NewState(), Loaded{Draft: DraftFromSet(set)})
	assert.Equal(t, Editing, s.Phase)
	assert.True(t, s.Editing())
	assert.False(t, s.HasUnsavedChanges())

	s = m.Reduce(s, CardAdded{})
	assert.True(t, s.HasUnsavedChanges())

	s = m.Reduce(s, CardDeleted{Index: 1})
	assert.False(t, s.HasUnsavedChanges(), "back to the loaded content")
}

func TestReduce_ExitPrompt(t *testing.T) {
	m := testMachine()

	clean := m.Reduce(NewState(), ExitRequested{Destination: "/created-sets"})
	assert.Equal(t, ExitState{Destination: "/created-sets"}, clean.Exit)

	dirty := run(m, NewState(), TitleChanged{Title: "Cells"}, ExitRequested{Destination: "/created-sets"})
	assert.Equal(t, ExitState{Destination: "/created-sets", Prompt: true}, dirty.Exit)

	cancelled := m.Reduce(dirty, ExitCancelled{})
	assert.Equal(t, ExitState{}, cancelled.Exit)
	assert.Equal(t, "Cells", cancelled.Draft.Title)
}

func TestDraftPayload(t *testing.T) {
	d := Draft{
		ID:          "s1",
		Title:       "  Cells ",
		ClassCode:   " BIO101",
		Description: " about cells ",
		IsPublic:    true,
		Cards:       []models.Flashcard{{}, {Question: "Q"}, {Question: " ", Answer: "\n"}},
	}
	p := d.Payload("u1")
	assert.Equal(t, "Cells", p.Title)
	assert.Equal(t, "BIO101", p.ClassCode)
	assert.Equal(t, "about cells", p.Description)
	assert.Equal(t, []models.Flashcard{{Question: "Q"}}, p.Flashcards)
	assert.Equal(t, "u1", p.UserID)
	assert.True(t, p.IsPublic)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
