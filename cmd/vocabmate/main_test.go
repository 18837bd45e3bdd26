package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabmate/vocabmate/internal/testutil"
)

func TestNewRootCommand(t *testing.T) {
	rootCommand := newRootCommand()

	commands := make([]string, 0, len(rootCommand.Commands()))
	for _, command := range rootCommand.Commands() {
		commands = append(commands, command.Name())
	}
	for _, want := range []string{"lookup", "word-of-day", "session", "history", "favorites", "export", "import"} {
		assert.Contains(t, commands, want)
	}

	assert.NotNil(t, rootCommand.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCommand.PersistentFlags().Lookup("debug"))
}

func TestRootCommand_Help(t *testing.T) {
	rootCommand := newRootCommand()
	var output bytes.Buffer
	rootCommand.SetOut(&output)
	rootCommand.SetArgs([]string{"--help"})

	require.NoError(t, rootCommand.Execute())
	assert.Contains(t, output.String(), "Dictionary lookup client")
}

func TestHistoryCommand_EmptyStore(t *testing.T) {
	configPath := testutil.SetupTestConfig(t, t.TempDir())

	rootCommand := newRootCommand()
	rootCommand.SetArgs([]string{"history", "--config", configPath})
	require.NoError(t, rootCommand.Execute())
}

func TestFavoritesToggleCommand_RoundTrip(t *testing.T) {
	configPath := testutil.SetupTestConfig(t, t.TempDir())

	for i := 0; i < 2; i++ {
		rootCommand := newRootCommand()
		rootCommand.SetArgs([]string{"favorites", "toggle", "lucid", "--config", configPath})
		require.NoError(t, rootCommand.Execute())
	}

	rootCommand := newRootCommand()
	rootCommand.SetArgs([]string{"favorites", "--config", configPath})
	require.NoError(t, rootCommand.Execute())
}

func TestExportCommand_WritesArchive(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := testutil.SetupTestConfig(t, tmpDir)
	archivePath := filepath.Join(tmpDir, "archive.yml")

	rootCommand := newRootCommand()
	rootCommand.SetArgs([]string{"export", "--output", archivePath, "--config", configPath})
	require.NoError(t, rootCommand.Execute())

	importCommand := newRootCommand()
	importCommand.SetArgs([]string{"import", archivePath, "--config", configPath})
	require.NoError(t, importCommand.Execute())
}
