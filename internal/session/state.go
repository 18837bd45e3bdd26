// Package session owns the client view state and applies every state
// transition triggered by user intents and remote responses.
package session

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"

	"github.com/vocabmate/vocabmate/internal/dictionary"
)

// Panel is one of the four mutually exclusive top-level views.
type Panel string

const (
	PanelSearch    Panel = "search"
	PanelHistory   Panel = "history"
	PanelFavorites Panel = "favorites"
	PanelWordOfDay Panel = "wordOfDay"
)

var allPanels = []Panel{PanelSearch, PanelHistory, PanelFavorites, PanelWordOfDay}

// Valid reports whether p is one of the enumerated panels.
func (p Panel) Valid() bool {
	return slices.Contains(allPanels, p)
}

func (p Panel) String() string {
	return string(p)
}

// Set implements pflag.Value so commands can take a --panel flag.
func (p *Panel) Set(val string) error {
	for _, panel := range allPanels {
		if val == string(panel) {
			*p = panel
			return nil
		}
	}
	return fmt.Errorf("invalid panel: %s", val)
}

func (p *Panel) Type() string {
	return "Panel"
}

var _ pflag.Value = (*Panel)(nil)

// SearchStatus is the lifecycle state of the current search.
type SearchStatus int

const (
	StatusIdle SearchStatus = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s SearchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	}
	return "unknown"
}

const (
	// maxHistoryEntries caps the search history; inserting beyond it evicts
	// the oldest entry.
	maxHistoryEntries = 10
	// suggestionMinRunes is the draft length the user must exceed before
	// history suggestions appear.
	suggestionMinRunes = 2
)

// ViewState is the aggregate the presentation layer renders. History,
// favorites, and the preference fields are the only durable subsets.
type ViewState struct {
	Draft            string
	Query            string
	Results          []dictionary.Definition
	Error            string
	Status           SearchStatus
	ActivePanel      Panel
	Suggestions      []string
	History          []string
	Favorites        []string
	ThemeMode        string
	Language         string
	OnboardingSeen   bool
	WordOfDay        *dictionary.Definition
	WordOfDayLoading bool
}

// clone returns a copy safe to hand to the presentation layer.
func (s ViewState) clone() ViewState {
	copied := s
	copied.Results = slices.Clone(s.Results)
	copied.Suggestions = slices.Clone(s.Suggestions)
	copied.History = slices.Clone(s.History)
	copied.Favorites = slices.Clone(s.Favorites)
	if s.WordOfDay != nil {
		wordOfDay := *s.WordOfDay
		copied.WordOfDay = &wordOfDay
	}
	return copied
}
