package main

import (
	"github.com/spf13/cobra"

	"github.com/vocabmate/vocabmate/internal/cli"
)

func newSessionCommand() *cobra.Command {
	var ephemeral bool
	command := cobra.Command{
		Use:   "session",
		Short: "Start an interactive dictionary session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			manager, speaker, cleanup, err := buildManager(cfg, ephemeral)
			if err != nil {
				return err
			}
			defer cleanup()

			sessionCLI := cli.NewSessionCLI(manager, speaker, cfg.Speech.Locale)
			return sessionCLI.Run(cmd.Context())
		},
	}
	command.Flags().BoolVar(&ephemeral, "ephemeral", false, "Do not persist history, favorites, or preferences")
	return &command
}
