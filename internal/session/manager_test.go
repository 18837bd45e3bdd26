package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vocabmate/vocabmate/internal/dictionary"
	mock_dictionary "github.com/vocabmate/vocabmate/internal/mocks/dictionary"
	mock_speech "github.com/vocabmate/vocabmate/internal/mocks/speech"
	"github.com/vocabmate/vocabmate/internal/speech"
	"github.com/vocabmate/vocabmate/internal/store"
)

func newTestManager(t *testing.T, lookup dictionary.Lookup, speaker speech.Speaker, cfg Config) (*Manager, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	manager := NewManager(lookup, store.NewPreferences(kv, "en"), speaker, cfg)
	manager.Restore(context.Background())
	return manager, kv
}

func lucidDefinition() dictionary.Definition {
	return dictionary.Definition{
		Word:              "lucid",
		Pronunciation:     "ˈluːsɪd",
		PartOfSpeech:      "adjective",
		DefinitionPrimary: "expressed clearly; easy to understand",
		Examples:          []string{"a lucid explanation"},
		Synonyms:          []string{"clear", "crystalline"},
		Antonyms:          []string{"confusing"},
	}
}

func TestManager_SubmitSearch(t *testing.T) {
	rejected := &dictionary.LookupError{
		Kind:       dictionary.RemoteRejected,
		Message:    "not found",
		StatusCode: 404,
	}

	tests := []struct {
		name        string
		word        string
		setupMock   func(mockLookup *mock_dictionary.MockLookup)
		wantStatus  SearchStatus
		wantError   string
		wantResults int
		wantHistory []string
	}{
		{
			name: "successful search populates results and history",
			word: "lucid",
			setupMock: func(mockLookup *mock_dictionary.MockLookup) {
				mockLookup.EXPECT().
					Search(gomock.Any(), "lucid", "en").
					Return([]dictionary.Definition{lucidDefinition()}, nil)
			},
			wantStatus:  StatusLoaded,
			wantResults: 1,
			wantHistory: []string{"lucid"},
		},
		{
			name: "remote rejection sets the error and clears results",
			word: "xyzzy",
			setupMock: func(mockLookup *mock_dictionary.MockLookup) {
				mockLookup.EXPECT().
					Search(gomock.Any(), "xyzzy", "en").
					Return(nil, rejected)
			},
			wantStatus:  StatusErrored,
			wantError:   "not found",
			wantHistory: []string{},
		},
		{
			name: "transport failure falls back to the generic message",
			word: "lucid",
			setupMock: func(mockLookup *mock_dictionary.MockLookup) {
				mockLookup.EXPECT().
					Search(gomock.Any(), "lucid", "en").
					Return(nil, fmt.Errorf("connection refused"))
			},
			wantStatus:  StatusErrored,
			wantError:   dictionary.GenericFailureMessage,
			wantHistory: []string{},
		},
		{
			name:        "blank query is a silent no-op",
			word:        "   ",
			setupMock:   func(mockLookup *mock_dictionary.MockLookup) {},
			wantStatus:  StatusIdle,
			wantHistory: []string{},
		},
		{
			name: "surrounding whitespace is trimmed before the lookup",
			word: "  lucid  ",
			setupMock: func(mockLookup *mock_dictionary.MockLookup) {
				mockLookup.EXPECT().
					Search(gomock.Any(), "lucid", "en").
					Return([]dictionary.Definition{lucidDefinition()}, nil)
			},
			wantStatus:  StatusLoaded,
			wantResults: 1,
			wantHistory: []string{"lucid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLookup := mock_dictionary.NewMockLookup(ctrl)
			tt.setupMock(mockLookup)

			manager, _ := newTestManager(t, mockLookup, nil, Config{})
			require.NoError(t, manager.SubmitSearch(context.Background(), tt.word))

			state := manager.Snapshot()
			assert.Equal(t, tt.wantStatus, state.Status)
			assert.Equal(t, tt.wantError, state.Error)
			assert.Len(t, state.Results, tt.wantResults)
			assert.Equal(t, tt.wantHistory, state.History)
			if tt.wantStatus == StatusLoaded {
				assert.Empty(t, state.Error)
			}
			if tt.wantStatus == StatusErrored {
				assert.Empty(t, state.Results)
			}
		})
	}
}

func TestManager_SubmitSearch_BlankLeavesStateUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockLookup.EXPECT().
		Search(gomock.Any(), "cat", "en").
		Return([]dictionary.Definition{{Word: "cat", DefinitionPrimary: "a small feline"}}, nil)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()
	require.NoError(t, manager.SubmitSearch(ctx, "cat"))
	before := manager.Snapshot()

	require.NoError(t, manager.SubmitSearch(ctx, ""))
	require.NoError(t, manager.SubmitSearch(ctx, "   "))

	assert.Equal(t, before, manager.Snapshot())
}

func TestManager_SubmitSearch_HistoryCapAndDedup(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockLookup.EXPECT().
		Search(gomock.Any(), gomock.Any(), "en").
		DoAndReturn(func(_ context.Context, word, _ string) ([]dictionary.Definition, error) {
			return []dictionary.Definition{{Word: word, DefinitionPrimary: "definition of " + word}}, nil
		}).
		AnyTimes()

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, manager.SubmitSearch(ctx, fmt.Sprintf("word%02d", i)))
		// searching every word twice must not create duplicates
		require.NoError(t, manager.SubmitSearch(ctx, fmt.Sprintf("word%02d", i)))
	}

	history := manager.Snapshot().History
	require.Len(t, history, 10)
	seen := make(map[string]bool, len(history))
	for _, word := range history {
		assert.False(t, seen[word], "duplicate history entry %q", word)
		seen[word] = true
	}
	// most recent first, oldest evicted
	assert.Equal(t, "word14", history[0])
	assert.Equal(t, "word05", history[9])
}

func TestManager_SubmitSearch_RepeatKeepsHistoryInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockLookup.EXPECT().
		Search(gomock.Any(), gomock.Any(), "en").
		DoAndReturn(func(_ context.Context, word, _ string) ([]dictionary.Definition, error) {
			return []dictionary.Definition{{Word: word, DefinitionPrimary: "definition"}}, nil
		}).
		Times(3)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()
	require.NoError(t, manager.SubmitSearch(ctx, "dog"))
	require.NoError(t, manager.SubmitSearch(ctx, "cat"))
	require.Equal(t, []string{"cat", "dog"}, manager.Snapshot().History)

	// re-searching a present word neither duplicates nor reorders
	require.NoError(t, manager.SubmitSearch(ctx, "cat"))
	assert.Equal(t, []string{"cat", "dog"}, manager.Snapshot().History)
}

func TestManager_SubmitSearch_StaleCompletionIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()

	mockLookup.EXPECT().
		Search(gomock.Any(), "fast", "en").
		Return([]dictionary.Definition{{Word: "fast", DefinitionPrimary: "quick"}}, nil)
	mockLookup.EXPECT().
		Search(gomock.Any(), "slow", "en").
		DoAndReturn(func(_ context.Context, _, _ string) ([]dictionary.Definition, error) {
			// a newer search completes while this one is still in flight
			require.NoError(t, manager.SubmitSearch(ctx, "fast"))
			return []dictionary.Definition{{Word: "slow", DefinitionPrimary: "sluggish"}}, nil
		})

	require.NoError(t, manager.SubmitSearch(ctx, "slow"))

	state := manager.Snapshot()
	assert.Equal(t, StatusLoaded, state.Status)
	require.Len(t, state.Results, 1)
	assert.Equal(t, "fast", state.Results[0].Word)
	// the superseded search must not touch the history either
	assert.Equal(t, []string{"fast"}, state.History)
}

func TestManager_SubmitSearch_AutoSpeaksPrimaryWord(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockSpeaker := mock_speech.NewMockSpeaker(ctrl)

	mockLookup.EXPECT().
		Search(gomock.Any(), "lucid", "en").
		Return([]dictionary.Definition{lucidDefinition()}, nil)

	spoken := make(chan string, 1)
	mockSpeaker.EXPECT().
		Speak(gomock.Any(), "lucid", "en-US").
		DoAndReturn(func(_ context.Context, text, _ string) error {
			spoken <- text
			return nil
		})

	manager, _ := newTestManager(t, mockLookup, mockSpeaker, Config{
		AutoSpeakDelay: time.Millisecond,
		SpeechLocale:   "en-US",
	})
	require.NoError(t, manager.SubmitSearch(context.Background(), "lucid"))

	select {
	case text := <-spoken:
		assert.Equal(t, "lucid", text)
	case <-time.After(time.Second):
		t.Fatal("scheduled pronunciation never fired")
	}
}

func TestManager_SubmitSearch_NewerSearchSupersedesScheduledSpeech(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockSpeaker := mock_speech.NewMockSpeaker(ctrl)

	mockLookup.EXPECT().
		Search(gomock.Any(), gomock.Any(), "en").
		DoAndReturn(func(_ context.Context, word, _ string) ([]dictionary.Definition, error) {
			return []dictionary.Definition{{Word: word, DefinitionPrimary: "definition"}}, nil
		}).
		Times(2)

	spoken := make(chan string, 2)
	// only the most recent scheduled word may play
	mockSpeaker.EXPECT().
		Speak(gomock.Any(), "second", "en-US").
		DoAndReturn(func(_ context.Context, text, _ string) error {
			spoken <- text
			return nil
		})

	manager, _ := newTestManager(t, mockLookup, mockSpeaker, Config{
		AutoSpeakDelay: 500 * time.Millisecond,
		SpeechLocale:   "en-US",
	})
	ctx := context.Background()
	require.NoError(t, manager.SubmitSearch(ctx, "first"))
	require.NoError(t, manager.SubmitSearch(ctx, "second"))

	select {
	case text := <-spoken:
		assert.Equal(t, "second", text)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled pronunciation never fired")
	}
}

func TestManager_ToggleFavorite(t *testing.T) {
	manager, kv := newTestManager(t, nil, nil, Config{})
	ctx := context.Background()

	require.NoError(t, manager.ToggleFavorite(ctx, "lucid"))
	assert.Equal(t, []string{"lucid"}, manager.Snapshot().Favorites)

	require.NoError(t, manager.ToggleFavorite(ctx, "cat"))
	assert.Equal(t, []string{"lucid", "cat"}, manager.Snapshot().Favorites)

	// involution: toggling twice restores the original state
	require.NoError(t, manager.ToggleFavorite(ctx, "cat"))
	assert.Equal(t, []string{"lucid"}, manager.Snapshot().Favorites)

	// persisted immediately
	value, found, err := kv.Load(ctx, store.KeyFavorites)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["lucid"]`, value)

	// history is unaffected
	assert.Empty(t, manager.Snapshot().History)
}

func TestManager_UpdateQueryDraft(t *testing.T) {
	tests := []struct {
		name            string
		history         []string
		draft           string
		wantSuggestions []string
	}{
		{
			name:            "draft at the threshold clears suggestions",
			history:         []string{"cat", "car", "dog"},
			draft:           "ca",
			wantSuggestions: nil,
		},
		{
			name:            "case-insensitive substring match over the threshold",
			history:         []string{"cat", "car", "dog"},
			draft:           "cat",
			wantSuggestions: []string{"cat"},
		},
		{
			name:            "matches anywhere in the entry",
			history:         []string{"scatter", "Category", "dog"},
			draft:           "CAT",
			wantSuggestions: []string{"scatter", "Category"},
		},
		{
			name:            "empty draft clears suggestions",
			history:         []string{"cat"},
			draft:           "",
			wantSuggestions: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLookup := mock_dictionary.NewMockLookup(ctrl)
			mockLookup.EXPECT().
				Search(gomock.Any(), gomock.Any(), "en").
				DoAndReturn(func(_ context.Context, word, _ string) ([]dictionary.Definition, error) {
					return []dictionary.Definition{{Word: word, DefinitionPrimary: "definition"}}, nil
				}).
				AnyTimes()

			manager, _ := newTestManager(t, mockLookup, nil, Config{})
			ctx := context.Background()
			// seed the history most-recent-last so the stored order matches
			// tt.history
			for i := len(tt.history) - 1; i >= 0; i-- {
				require.NoError(t, manager.SubmitSearch(ctx, tt.history[i]))
			}

			manager.UpdateQueryDraft(tt.draft)
			state := manager.Snapshot()
			assert.Equal(t, tt.draft, state.Draft)
			assert.Equal(t, tt.wantSuggestions, state.Suggestions)
		})
	}
}

func TestManager_SelectSuggestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockLookup.EXPECT().
		Search(gomock.Any(), gomock.Any(), "en").
		DoAndReturn(func(_ context.Context, word, _ string) ([]dictionary.Definition, error) {
			return []dictionary.Definition{{Word: word, DefinitionPrimary: "definition"}}, nil
		}).
		Times(2)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()
	require.NoError(t, manager.SubmitSearch(ctx, "category"))

	manager.SetActivePanel(ctx, PanelHistory)
	manager.UpdateQueryDraft("cate")
	require.NotEmpty(t, manager.Snapshot().Suggestions)

	require.NoError(t, manager.SelectSuggestion(ctx, "category"))

	state := manager.Snapshot()
	assert.Equal(t, PanelSearch, state.ActivePanel)
	assert.Equal(t, StatusLoaded, state.Status)
	assert.Empty(t, state.Suggestions)
	require.Len(t, state.Results, 1)
	assert.Equal(t, "category", state.Results[0].Word)
}

func TestManager_WordOfTheDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()

	// entering the panel fetches once; re-entering serves the cache
	mockLookup.EXPECT().
		WordOfTheDay(gomock.Any(), "en").
		Return(dictionary.Definition{Word: "serendipity", DefinitionPrimary: "a happy accident"}, nil).
		Times(1)
	manager.SetActivePanel(ctx, PanelWordOfDay)
	manager.SetActivePanel(ctx, PanelSearch)
	manager.SetActivePanel(ctx, PanelWordOfDay)

	state := manager.Snapshot()
	assert.Equal(t, PanelWordOfDay, state.ActivePanel)
	require.NotNil(t, state.WordOfDay)
	assert.Equal(t, "serendipity", state.WordOfDay.Word)
	assert.False(t, state.WordOfDayLoading)

	// changing the language invalidates the cache and refetches exactly once
	mockLookup.EXPECT().
		WordOfTheDay(gomock.Any(), "hi").
		Return(dictionary.Definition{Word: "lagan", DefinitionPrimary: "dedication"}, nil).
		Times(1)
	require.NoError(t, manager.SetLanguage(ctx, "hi"))
	require.Nil(t, manager.Snapshot().WordOfDay)
	manager.SetActivePanel(ctx, PanelWordOfDay)
	manager.SetActivePanel(ctx, PanelWordOfDay)

	state = manager.Snapshot()
	require.NotNil(t, state.WordOfDay)
	assert.Equal(t, "lagan", state.WordOfDay.Word)
}

func TestManager_WordOfTheDay_FailureKeepsRetryAffordance(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()

	mockLookup.EXPECT().
		WordOfTheDay(gomock.Any(), "en").
		Return(dictionary.Definition{}, &dictionary.LookupError{Kind: dictionary.RemoteUnavailable, Message: dictionary.GenericFailureMessage})
	manager.SetActivePanel(ctx, PanelWordOfDay)

	state := manager.Snapshot()
	assert.Nil(t, state.WordOfDay)
	assert.False(t, state.WordOfDayLoading)

	// the manual retry re-runs the identical operation
	mockLookup.EXPECT().
		WordOfTheDay(gomock.Any(), "en").
		Return(dictionary.Definition{Word: "serendipity", DefinitionPrimary: "a happy accident"}, nil)
	manager.RefreshWordOfTheDay(ctx)

	state = manager.Snapshot()
	require.NotNil(t, state.WordOfDay)
	assert.Equal(t, "serendipity", state.WordOfDay.Word)
}

func TestManager_SetActivePanel(t *testing.T) {
	manager, _ := newTestManager(t, nil, nil, Config{})
	ctx := context.Background()

	assert.Equal(t, PanelSearch, manager.Snapshot().ActivePanel)

	manager.SetActivePanel(ctx, PanelHistory)
	assert.Equal(t, PanelHistory, manager.Snapshot().ActivePanel)

	manager.SetActivePanel(ctx, Panel("bogus"))
	assert.Equal(t, PanelHistory, manager.Snapshot().ActivePanel)

	manager.SetActivePanel(ctx, PanelFavorites)
	assert.Equal(t, PanelFavorites, manager.Snapshot().ActivePanel)
}

func TestManager_ThemeAndOnboarding(t *testing.T) {
	manager, kv := newTestManager(t, nil, nil, Config{})
	ctx := context.Background()

	assert.Equal(t, store.ThemeLight, manager.Snapshot().ThemeMode)
	require.NoError(t, manager.ToggleTheme(ctx))
	assert.Equal(t, store.ThemeDark, manager.Snapshot().ThemeMode)

	value, found, err := kv.Load(ctx, store.KeyTheme)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, store.ThemeDark, value)

	require.False(t, manager.Snapshot().OnboardingSeen)
	require.NoError(t, manager.DismissOnboarding(ctx))
	assert.True(t, manager.Snapshot().OnboardingSeen)

	_, found, err = kv.Load(ctx, store.KeyOnboardingSeen)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestManager_RestoreSeedsFromStore(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Save(ctx, store.KeyHistory, `["cat","dog"]`))
	require.NoError(t, kv.Save(ctx, store.KeyFavorites, `["lucid"]`))
	require.NoError(t, kv.Save(ctx, store.KeyTheme, store.ThemeDark))
	require.NoError(t, kv.Save(ctx, store.KeyLanguage, "hi"))
	require.NoError(t, kv.Save(ctx, store.KeyOnboardingSeen, "true"))

	manager := NewManager(nil, store.NewPreferences(kv, "en"), nil, Config{})
	manager.Restore(ctx)

	state := manager.Snapshot()
	assert.Equal(t, []string{"cat", "dog"}, state.History)
	assert.Equal(t, []string{"lucid"}, state.Favorites)
	assert.Equal(t, store.ThemeDark, state.ThemeMode)
	assert.Equal(t, "hi", state.Language)
	assert.True(t, state.OnboardingSeen)
	assert.Equal(t, PanelSearch, state.ActivePanel)
}

func TestManager_SnapshotIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLookup := mock_dictionary.NewMockLookup(ctrl)
	mockLookup.EXPECT().
		Search(gomock.Any(), "cat", "en").
		Return([]dictionary.Definition{{Word: "cat", DefinitionPrimary: "a small feline"}}, nil)

	manager, _ := newTestManager(t, mockLookup, nil, Config{})
	ctx := context.Background()
	require.NoError(t, manager.SubmitSearch(ctx, "cat"))

	state := manager.Snapshot()
	state.Results[0].Word = "mutated"
	state.History[0] = "mutated"

	fresh := manager.Snapshot()
	assert.Equal(t, "cat", fresh.Results[0].Word)
	assert.Equal(t, "cat", fresh.History[0])
}
