package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocabmate/vocabmate/internal/cli"
	"github.com/vocabmate/vocabmate/internal/session"
)

func newWordOfDayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "word-of-day",
		Short: "Show the word of the day",
		Args:  cobra.NoArgs,
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
			manager.SetActivePanel(ctx, session.PanelWordOfDay)

			state := manager.Snapshot()
			if state.WordOfDay == nil {
				return fmt.Errorf("failed to load word of the day")
			}
			cli.NewRenderer().RenderDefinition(os.Stdout, *state.WordOfDay, state.Favorites)
			return nil
		},
	}
}
