package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocabmate/vocabmate/internal/cli"
	"github.com/vocabmate/vocabmate/internal/session"
)

func newLookupCommand() *cobra.Command {
	var languageCode string
	command := cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up the definitions of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]

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
			if languageCode != "" {
				if err := manager.SetLanguage(ctx, languageCode); err != nil {
					return fmt.Errorf("manager.SetLanguage > %w", err)
				}
			}
			if err := manager.SubmitSearch(ctx, word); err != nil {
				return fmt.Errorf("manager.SubmitSearch > %w", err)
			}

			state := manager.Snapshot()
			if state.Status == session.StatusErrored {
				return fmt.Errorf("lookup failed: %s", state.Error)
			}
			renderer := cli.NewRenderer()
			for _, result := range state.Results {
				renderer.RenderDefinition(os.Stdout, result, state.Favorites)
			}
			if len(state.Results) == 0 {
				fmt.Printf("No definitions found for %q.\n", word)
			}
			return nil
		},
	}
	command.Flags().StringVar(&languageCode, "lang", "", "Override the configured language code")
	return &command
}
