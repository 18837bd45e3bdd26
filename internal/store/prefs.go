package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Theme modes persisted under KeyTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Snapshot is the durable state loaded at session start.
type Snapshot struct {
	History        []string
	Favorites      []string
	ThemeMode      string
	Language       string
	OnboardingSeen bool
}

// Preferences is a typed wrapper over the KV contract. Missing or corrupt
// values never fail a load; they degrade to defaults and are logged.
type Preferences struct {
	kv              KV
	defaultLanguage string
	logger          *slog.Logger
}

// NewPreferences creates a Preferences wrapper. defaultLanguage is used when
// no language has been persisted yet.
func NewPreferences(kv KV, defaultLanguage string) *Preferences {
	return &Preferences{
		kv:              kv,
		defaultLanguage: defaultLanguage,
		logger:          slog.Default(),
	}
}

// LoadAll reads every durable key, substituting defaults for anything
// missing or unparseable.
func (p *Preferences) LoadAll(ctx context.Context) Snapshot {
	snapshot := Snapshot{
		History:   []string{},
		Favorites: []string{},
		ThemeMode: ThemeLight,
		Language:  p.defaultLanguage,
	}

	snapshot.History = p.loadWordList(ctx, KeyHistory)
	snapshot.Favorites = p.loadWordList(ctx, KeyFavorites)

	if theme, found := p.loadString(ctx, KeyTheme); found {
		if theme == ThemeLight || theme == ThemeDark {
			snapshot.ThemeMode = theme
		} else {
			p.logger.Warn("ignoring corrupt stored preference", "key", KeyTheme, "value", theme)
		}
	}
	if language, found := p.loadString(ctx, KeyLanguage); found && language != "" {
		snapshot.Language = language
	}
	if _, found := p.loadString(ctx, KeyOnboardingSeen); found {
		// presence alone marks the onboarding as seen
		snapshot.OnboardingSeen = true
	}
	return snapshot
}

func (p *Preferences) loadString(ctx context.Context, key string) (string, bool) {
	value, found, err := p.kv.Load(ctx, key)
	if err != nil {
		p.logger.Warn("failed to load stored preference", "key", key, "error", err)
		return "", false
	}
	return value, found
}

func (p *Preferences) loadWordList(ctx context.Context, key string) []string {
	value, found := p.loadString(ctx, key)
	if !found {
		return []string{}
	}
	var words []string
	if err := json.Unmarshal([]byte(value), &words); err != nil {
		p.logger.Warn("ignoring corrupt stored preference", "key", key, "error", err)
		return []string{}
	}
	return words
}

// SaveHistory persists the search history.
func (p *Preferences) SaveHistory(ctx context.Context, history []string) error {
	return p.saveWordList(ctx, KeyHistory, history)
}

// SaveFavorites persists the favorite words.
func (p *Preferences) SaveFavorites(ctx context.Context, favorites []string) error {
	return p.saveWordList(ctx, KeyFavorites, favorites)
}

func (p *Preferences) saveWordList(ctx context.Context, key string, words []string) error {
	if words == nil {
		words = []string{}
	}
	serialized, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := p.kv.Save(ctx, key, string(serialized)); err != nil {
		return fmt.Errorf("kv.Save(%s) > %w", key, err)
	}
	return nil
}

// SaveTheme persists the theme mode.
func (p *Preferences) SaveTheme(ctx context.Context, mode string) error {
	if err := p.kv.Save(ctx, KeyTheme, mode); err != nil {
		return fmt.Errorf("kv.Save(%s) > %w", KeyTheme, err)
	}
	return nil
}

// SaveLanguage persists the language code.
func (p *Preferences) SaveLanguage(ctx context.Context, code string) error {
	if err := p.kv.Save(ctx, KeyLanguage, code); err != nil {
		return fmt.Errorf("kv.Save(%s) > %w", KeyLanguage, err)
	}
	return nil
}

// SaveOnboardingSeen marks the onboarding note as seen. There is no way to
// unsee it.
func (p *Preferences) SaveOnboardingSeen(ctx context.Context) error {
	if err := p.kv.Save(ctx, KeyOnboardingSeen, "true"); err != nil {
		return fmt.Errorf("kv.Save(%s) > %w", KeyOnboardingSeen, err)
	}
	return nil
}
