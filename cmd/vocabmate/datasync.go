package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vocabmate/vocabmate/internal/datasync"
	"github.com/vocabmate/vocabmate/internal/store"
)

func newExportCommand() *cobra.Command {
	var outputFile string
	command := cobra.Command{
		Use:   "export",
		Short: "Export history and favorites to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			syncer, cleanup, err := buildSyncer()
			if err != nil {
				return err
			}
			defer cleanup()
			return syncer.Export(cmd.Context(), outputFile)
		},
	}
	command.Flags().StringVar(&outputFile, "output", "vocabmate.yml", "Output file path")
	return &command
}

func newImportCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "import <file>",
		Short: "Merge history and favorites from a YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncer, cleanup, err := buildSyncer()
			if err != nil {
				return err
			}
			defer cleanup()
			_, err = syncer.Import(cmd.Context(), args[0])
			return err
		},
	}
	return &command
}

func buildSyncer() (*datasync.Syncer, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	kv, closeStore, err := openStore(cfg, false)
	if err != nil {
		return nil, nil, err
	}
	prefs := store.NewPreferences(kv, cfg.Defaults.Language)
	return datasync.NewSyncer(prefs, os.Stdout), closeStore, nil
}
