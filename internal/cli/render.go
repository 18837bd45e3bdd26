// Package cli renders the session view state to a terminal and translates
// user input into session intents.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vocabmate/vocabmate/internal/dictionary"
	"github.com/vocabmate/vocabmate/internal/session"
)

// Renderer writes a view-state snapshot to a writer. It holds no state of
// its own beyond color configuration.
type Renderer struct {
	bold   *color.Color
	italic *color.Color
	faint  *color.Color
	red    *color.Color
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		faint:  color.New(color.Faint),
		red:    color.New(color.FgRed),
	}
}

// Render writes the active panel of the snapshot to w.
func (r *Renderer) Render(w io.Writer, state session.ViewState) {
	switch state.ActivePanel {
	case session.PanelHistory:
		r.renderHistory(w, state)
	case session.PanelFavorites:
		r.renderFavorites(w, state)
	case session.PanelWordOfDay:
		r.renderWordOfDay(w, state)
	default:
		r.renderSearch(w, state)
	}
}

func (r *Renderer) renderSearch(w io.Writer, state session.ViewState) {
	switch state.Status {
	case session.StatusLoading:
		fmt.Fprintf(w, "Searching for %q...\n", state.Query)
	case session.StatusErrored:
		r.red.Fprintln(w, state.Error)
	case session.StatusLoaded:
		if len(state.Results) == 0 {
			fmt.Fprintf(w, "No definitions found for %q.\n", state.Query)
			return
		}
		for _, result := range state.Results {
			r.renderDefinition(w, result, state.Favorites)
		}
	default:
		fmt.Fprintln(w, "Search for any word to get definitions, pronunciations, and more.")
	}

	if len(state.Suggestions) > 0 {
		r.faint.Fprintf(w, "Suggestions from your history: %s\n", strings.Join(state.Suggestions, ", "))
	}
}

// RenderDefinition writes a single definition card.
func (r *Renderer) RenderDefinition(w io.Writer, definition dictionary.Definition, favorites []string) {
	r.renderDefinition(w, definition, favorites)
}

func (r *Renderer) renderDefinition(w io.Writer, definition dictionary.Definition, favorites []string) {
	r.bold.Fprint(w, definition.Word)
	if definition.Pronunciation != "" {
		fmt.Fprintf(w, " /%s/", definition.Pronunciation)
	}
	if isFavorite(favorites, definition.Word) {
		fmt.Fprint(w, " *")
	}
	fmt.Fprintln(w)

	if definition.PartOfSpeech != "" {
		r.italic.Fprintf(w, "[%s]\n", definition.PartOfSpeech)
	}
	fmt.Fprintf(w, "  %s\n", definition.DefinitionPrimary)
	if definition.DefinitionSecondary != "" {
		fmt.Fprintf(w, "  %s\n", definition.DefinitionSecondary)
	}
	if len(definition.Examples) > 0 {
		r.faint.Fprintln(w, "  Examples:")
		for _, example := range definition.Examples {
			fmt.Fprintf(w, "    %q\n", example)
		}
	}
	if len(definition.Synonyms) > 0 {
		fmt.Fprintf(w, "  Synonyms: %s\n", strings.Join(definition.Synonyms, ", "))
	}
	if len(definition.Antonyms) > 0 {
		fmt.Fprintf(w, "  Antonyms: %s\n", strings.Join(definition.Antonyms, ", "))
	}
}

func (r *Renderer) renderHistory(w io.Writer, state session.ViewState) {
	r.bold.Fprintln(w, "Search History")
	if len(state.History) == 0 {
		fmt.Fprintln(w, "No searches yet.")
		return
	}
	for i, word := range state.History {
		marker := ""
		if isFavorite(state.Favorites, word) {
			marker = " *"
		}
		fmt.Fprintf(w, "%2d: %s%s\n", i+1, word, marker)
	}
}

func (r *Renderer) renderFavorites(w io.Writer, state session.ViewState) {
	r.bold.Fprintln(w, "Favorite Words")
	if len(state.Favorites) == 0 {
		fmt.Fprintln(w, "You haven't saved any favorite words yet.")
		return
	}
	for i, word := range state.Favorites {
		fmt.Fprintf(w, "%2d: %s\n", i+1, word)
	}
}

func (r *Renderer) renderWordOfDay(w io.Writer, state session.ViewState) {
	r.bold.Fprintln(w, "Word of the Day")
	switch {
	case state.WordOfDayLoading:
		fmt.Fprintln(w, "Loading word of the day...")
	case state.WordOfDay != nil:
		r.renderDefinition(w, *state.WordOfDay, state.Favorites)
	default:
		r.red.Fprintln(w, "Failed to load word of the day.")
		fmt.Fprintln(w, "Use /retry to try again.")
	}
}

// RenderOnboarding writes the one-time welcome note.
func (r *Renderer) RenderOnboarding(w io.Writer) {
	r.bold.Fprintln(w, "Welcome to VocabMate!")
	fmt.Fprintln(w, "VocabMate focuses on word definitions and meanings.")
	fmt.Fprintln(w, "Sentence translation and analysis are not supported.")
	fmt.Fprintln(w, "Type a word to search, or /help for commands.")
}

func isFavorite(favorites []string, word string) bool {
	for _, favorite := range favorites {
		if favorite == word {
			return true
		}
	}
	return false
}
