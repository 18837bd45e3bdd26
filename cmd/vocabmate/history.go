package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocabmate/vocabmate/internal/store"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the persisted search history, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, cleanup, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if len(snapshot.History) == 0 {
				fmt.Println("No searches yet.")
				return nil
			}
			for i, word := range snapshot.History {
				fmt.Printf("%2d: %s\n", i+1, word)
			}
			return nil
		},
	}
}

func newFavoritesCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "favorites",
		Short: "List your favorite words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, cleanup, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if len(snapshot.Favorites) == 0 {
				fmt.Println("You haven't saved any favorite words yet.")
				return nil
			}
			for i, word := range snapshot.Favorites {
				fmt.Printf("%2d: %s\n", i+1, word)
			}
			return nil
		},
	}

	command.AddCommand(&cobra.Command{
		Use:   "toggle <word>",
		Short: "Add or remove a favorite word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, _, cleanup, err := buildManager(cfg, false)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			manager.Restore(ctx)
			if err := manager.ToggleFavorite(ctx, args[0]); err != nil {
				return fmt.Errorf("manager.ToggleFavorite > %w", err)
			}
			return nil
		},
	})
	return &command
}

func loadSnapshot(ctx context.Context) (store.Snapshot, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return store.Snapshot{}, nil, err
	}
	kv, closeStore, err := openStore(cfg, false)
	if err != nil {
		return store.Snapshot{}, nil, err
	}
	prefs := store.NewPreferences(kv, cfg.Defaults.Language)
	return prefs.LoadAll(ctx), closeStore, nil
}
