// Package testutil provides shared test helpers for creating config files
// and store fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and all required directories
// for testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"cache", "data"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`dictionary:
  base_url: https://dictionary.test
  timeout_seconds: 5
  cache_directory: %s
store:
  database_file: %s
defaults:
  language: en
  theme: light
`,
		filepath.Join(tmpDir, "cache"),
		filepath.Join(tmpDir, "data", "vocabmate.db"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}
