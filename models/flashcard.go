package models

import "strings"

// Flashcard is a single question/answer pair. Cards are stored inline on
// their set, in order.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IsBlank reports whether both sides of the card are empty after trimming.
func (f Flashcard) IsBlank() bool {
	return strings.TrimSpace(f.Question) == "" && strings.TrimSpace(f.Answer) == ""
}

// NonBlank returns the cards that have a question or an answer, keeping order.
func NonBlank(cards []Flashcard) []Flashcard {
	kept := make([]Flashcard, 0, len(cards))
	for _, c := range cards {
		if !c.IsBlank() {
			kept = append(kept, c)
		}
	}
	return kept
}
