package main

import (
	"fmt"

	"github.com/vocabmate/vocabmate/internal/config"
	"github.com/vocabmate/vocabmate/internal/dictionary"
	"github.com/vocabmate/vocabmate/internal/session"
	"github.com/vocabmate/vocabmate/internal/speech"
	"github.com/vocabmate/vocabmate/internal/store"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the sqlite preference store, or an in-memory one when
// ephemeral is set.
func openStore(cfg *config.Config, ephemeral bool) (store.KV, func(), error) {
	if ephemeral {
		return store.NewMemoryKV(), func() {}, nil
	}
	kv, err := store.Open(cfg.Store.DatabaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("store.Open > %w", err)
	}
	return kv, func() { _ = kv.Close() }, nil
}

// buildManager wires the session manager with its collaborators. The
// returned cleanup closes the store and stops any pending playback.
func buildManager(cfg *config.Config, ephemeral bool) (*session.Manager, speech.Speaker, func(), error) {
	kv, closeStore, err := openStore(cfg, ephemeral)
	if err != nil {
		return nil, nil, nil, err
	}

	prefs := store.NewPreferences(kv, cfg.Defaults.Language)
	client := dictionary.NewClient(dictionary.Config{
		BaseURL:        cfg.Dictionary.BaseURL,
		Timeout:        cfg.Dictionary.Timeout(),
		RetryAttempts:  cfg.Dictionary.RetryAttempts,
		CacheDirectory: cfg.Dictionary.CacheDirectory,
	})
	speaker := speech.NewCommandSpeaker(cfg.Speech.Command, cfg.Speech.LocaleFlag)

	manager := session.NewManager(client, prefs, speaker, session.Config{
		AutoSpeakDelay: cfg.Speech.AutoSpeakDelay(),
		SpeechLocale:   cfg.Speech.Locale,
	})
	cleanup := func() {
		manager.Close()
		closeStore()
	}
	return manager, speaker, cleanup, nil
}
