package session

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/vocabmate/vocabmate/internal/dictionary"
	"github.com/vocabmate/vocabmate/internal/speech"
	"github.com/vocabmate/vocabmate/internal/store"
)

// DefaultAutoSpeakDelay is how long after a successful search the primary
// result's word is pronounced automatically.
const DefaultAutoSpeakDelay = 500 * time.Millisecond

// Config holds the session manager knobs.
type Config struct {
	// AutoSpeakDelay overrides DefaultAutoSpeakDelay when positive.
	AutoSpeakDelay time.Duration
	// SpeechLocale is the locale tag passed to the speech capability.
	SpeechLocale string
}

// Manager is the sole authority over the session view state. All mutations
// flow through its operations, and it is the only component that writes to
// the preference store.
//
// Operations are safe for concurrent use. A completed remote operation is
// applied only if no newer operation of the same purpose has been issued
// since; stale completions are discarded silently.
type Manager struct {
	lookup         dictionary.Lookup
	prefs          *store.Preferences
	speaker        speech.Speaker
	autoSpeakDelay time.Duration
	speechLocale   string
	logger         *slog.Logger

	mu           sync.Mutex
	state        ViewState
	searchGen    uint64
	wordOfDayGen uint64
	speakTimer   *time.Timer
}

// NewManager creates a Manager with empty state. Call Restore to seed it
// from the preference store.
func NewManager(lookup dictionary.Lookup, prefs *store.Preferences, speaker speech.Speaker, cfg Config) *Manager {
	autoSpeakDelay := cfg.AutoSpeakDelay
	if autoSpeakDelay <= 0 {
		autoSpeakDelay = DefaultAutoSpeakDelay
	}
	return &Manager{
		lookup:         lookup,
		prefs:          prefs,
		speaker:        speaker,
		autoSpeakDelay: autoSpeakDelay,
		speechLocale:   cfg.SpeechLocale,
		logger:         slog.Default(),
		state: ViewState{
			ActivePanel: PanelSearch,
			ThemeMode:   store.ThemeLight,
			History:     []string{},
			Favorites:   []string{},
		},
	}
}

// Restore seeds the view state from the persisted preferences. Missing or
// corrupt stored values have already degraded to defaults inside the store.
func (m *Manager) Restore(ctx context.Context) {
	snapshot := m.prefs.LoadAll(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.History = snapshot.History
	m.state.Favorites = snapshot.Favorites
	m.state.ThemeMode = snapshot.ThemeMode
	m.state.Language = snapshot.Language
	m.state.OnboardingSeen = snapshot.OnboardingSeen
}

// Snapshot returns a copy of the current view state for rendering.
func (m *Manager) Snapshot() ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Close stops any pending auto-speak timer and active playback.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.speakTimer != nil {
		m.speakTimer.Stop()
		m.speakTimer = nil
	}
	m.mu.Unlock()
	if m.speaker != nil {
		m.speaker.Stop()
	}
}

// SubmitSearch runs a search for text against the remote service. A blank
// query is rejected without any state transition. On success the word is
// recorded in the history and the primary result's word is scheduled for
// pronunciation; on failure the error message replaces the result set.
func (m *Manager) SubmitSearch(ctx context.Context, text string) error {
	word := strings.TrimSpace(text)
	if word == "" {
		// ValidationRejected: silent no-op
		return nil
	}

	m.mu.Lock()
	m.searchGen++
	generation := m.searchGen
	languageCode := m.state.Language
	m.state.Query = word
	m.state.Status = StatusLoading
	m.mu.Unlock()

	results, err := m.lookup.Search(ctx, word, languageCode)

	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.searchGen {
		m.logger.Debug("discarding stale search completion", "word", word)
		return nil
	}
	if err != nil {
		m.logger.Warn("search failed", "word", word, "error", err)
		m.state.Results = nil
		m.state.Error = dictionary.UserMessage(err)
		m.state.Status = StatusErrored
		return nil
	}

	m.state.Results = results
	m.state.Error = ""
	m.state.Status = StatusLoaded
	if len(results) > 0 && results[0].Word != "" {
		m.scheduleAutoSpeakLocked(results[0].Word)
	}
	return m.recordHistoryLocked(ctx, word)
}

// SelectSuggestion searches the suggested word and switches back to the
// result-displaying panel.
func (m *Manager) SelectSuggestion(ctx context.Context, text string) error {
	m.mu.Lock()
	m.state.Draft = text
	m.state.Suggestions = nil
	m.mu.Unlock()

	if err := m.SubmitSearch(ctx, text); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.ActivePanel = PanelSearch
	return nil
}

// ToggleFavorite adds word to the favorites if absent and removes it if
// present. The change is persisted immediately; history is unaffected.
func (m *Manager) ToggleFavorite(ctx context.Context, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index := slices.Index(m.state.Favorites, word); index >= 0 {
		m.state.Favorites = slices.Delete(slices.Clone(m.state.Favorites), index, index+1)
	} else {
		m.state.Favorites = append(slices.Clone(m.state.Favorites), word)
	}
	return m.prefs.SaveFavorites(ctx, m.state.Favorites)
}

// SetActivePanel switches the top-level view. Entering the word-of-the-day
// panel fetches the daily pick if none is cached for the current language.
func (m *Manager) SetActivePanel(ctx context.Context, panel Panel) {
	if !panel.Valid() {
		return
	}

	m.mu.Lock()
	m.state.ActivePanel = panel
	needsFetch := panel == PanelWordOfDay && m.state.WordOfDay == nil && !m.state.WordOfDayLoading
	m.mu.Unlock()

	if needsFetch {
		m.fetchWordOfDay(ctx)
	}
}

// RefreshWordOfTheDay is the manual retry affordance for a failed fetch. It
// always re-runs the identical remote operation.
func (m *Manager) RefreshWordOfTheDay(ctx context.Context) {
	m.fetchWordOfDay(ctx)
}

func (m *Manager) fetchWordOfDay(ctx context.Context) {
	m.mu.Lock()
	m.wordOfDayGen++
	generation := m.wordOfDayGen
	languageCode := m.state.Language
	m.state.WordOfDayLoading = true
	m.mu.Unlock()

	definition, err := m.lookup.WordOfTheDay(ctx, languageCode)

	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.wordOfDayGen {
		m.logger.Debug("discarding stale word-of-the-day completion", "language", languageCode)
		return
	}
	m.state.WordOfDayLoading = false
	if err != nil {
		// keep nil so the panel offers a retry
		m.logger.Warn("word of the day fetch failed", "language", languageCode, "error", err)
		m.state.WordOfDay = nil
		return
	}
	m.state.WordOfDay = &definition
}

// UpdateQueryDraft records the uncommitted input text and recomputes the
// suggestion list from the history once the draft exceeds the threshold.
func (m *Manager) UpdateQueryDraft(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Draft = text
	if utf8.RuneCountInString(text) <= suggestionMinRunes {
		m.state.Suggestions = nil
		return
	}

	needle := strings.ToLower(text)
	var suggestions []string
	for _, entry := range m.state.History {
		if strings.Contains(strings.ToLower(entry), needle) {
			suggestions = append(suggestions, entry)
		}
	}
	m.state.Suggestions = suggestions
}

// SetLanguage persists the language preference and invalidates the cached
// word of the day, which is language-scoped.
func (m *Manager) SetLanguage(ctx context.Context, code string) error {
	m.mu.Lock()
	m.state.Language = code
	m.state.WordOfDay = nil
	// any in-flight fetch for the previous language is now stale
	m.wordOfDayGen++
	m.state.WordOfDayLoading = false
	m.mu.Unlock()

	return m.prefs.SaveLanguage(ctx, code)
}

// SetThemeMode persists the theme preference.
func (m *Manager) SetThemeMode(ctx context.Context, mode string) error {
	if mode != store.ThemeLight && mode != store.ThemeDark {
		return nil
	}
	m.mu.Lock()
	m.state.ThemeMode = mode
	m.mu.Unlock()

	return m.prefs.SaveTheme(ctx, mode)
}

// ToggleTheme flips between light and dark mode.
func (m *Manager) ToggleTheme(ctx context.Context) error {
	m.mu.Lock()
	mode := store.ThemeDark
	if m.state.ThemeMode == store.ThemeDark {
		mode = store.ThemeLight
	}
	m.mu.Unlock()
	return m.SetThemeMode(ctx, mode)
}

// DismissOnboarding marks the onboarding note as seen. The transition is
// one-way.
func (m *Manager) DismissOnboarding(ctx context.Context) error {
	m.mu.Lock()
	m.state.OnboardingSeen = true
	m.mu.Unlock()

	return m.prefs.SaveOnboardingSeen(ctx)
}

// recordHistoryLocked prepends word to the history unless it is already
// present verbatim, evicting the oldest entry beyond the cap. A re-search of
// a present word leaves the entry in place.
func (m *Manager) recordHistoryLocked(ctx context.Context, word string) error {
	if slices.Contains(m.state.History, word) {
		return nil
	}

	history := append([]string{word}, m.state.History...)
	if len(history) > maxHistoryEntries {
		history = history[:maxHistoryEntries]
	}
	m.state.History = history
	return m.prefs.SaveHistory(ctx, history)
}

// scheduleAutoSpeakLocked arms the pronunciation timer for word. Only the
// most recently scheduled word plays; an unfired prior schedule is
// cancelled, and playback itself supersedes any active one.
func (m *Manager) scheduleAutoSpeakLocked(word string) {
	if m.speaker == nil {
		return
	}
	if m.speakTimer != nil {
		m.speakTimer.Stop()
	}
	locale := m.speechLocale
	m.speakTimer = time.AfterFunc(m.autoSpeakDelay, func() {
		if err := m.speaker.Speak(context.Background(), word, locale); err != nil {
			m.logger.Debug("auto pronunciation failed", "word", word, "error", err)
		}
	})
}
