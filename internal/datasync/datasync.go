// Package datasync provides export/import of the persisted history and
// favorites as YAML files.
package datasync

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vocabmate/vocabmate/internal/store"
)

const maxHistoryEntries = 10

// Archive is the exported document shape.
type Archive struct {
	ExportedAt time.Time `yaml:"exported_at"`
	History    []string  `yaml:"history"`
	Favorites  []string  `yaml:"favorites"`
}

// ImportResult tracks counts for an import operation.
type ImportResult struct {
	HistoryNew       int
	HistorySkipped   int
	FavoritesNew     int
	FavoritesSkipped int
}

// Syncer moves history and favorites between the preference store and YAML
// files. It runs outside any interactive session.
type Syncer struct {
	prefs  *store.Preferences
	writer io.Writer
}

// NewSyncer creates a new Syncer writing progress to writer.
func NewSyncer(prefs *store.Preferences, writer io.Writer) *Syncer {
	return &Syncer{
		prefs:  prefs,
		writer: writer,
	}
}

// Export writes the current history and favorites to path.
func (s *Syncer) Export(ctx context.Context, path string) error {
	snapshot := s.prefs.LoadAll(ctx)
	archive := Archive{
		ExportedAt: time.Now().UTC(),
		History:    snapshot.History,
		Favorites:  snapshot.Favorites,
	}
	if err := writeYAML(path, archive); err != nil {
		return fmt.Errorf("writeYAML(%s) > %w", path, err)
	}
	fmt.Fprintf(s.writer, "Exported %d history entries and %d favorites to %s\n",
		len(archive.History), len(archive.Favorites), path)
	return nil
}

// Import merges the archive at path into the store. Existing entries win:
// imported history goes behind current entries and is re-capped, imported
// favorites are appended when absent.
func (s *Syncer) Import(ctx context.Context, path string) (*ImportResult, error) {
	var archive Archive
	if err := readYAML(path, &archive); err != nil {
		return nil, fmt.Errorf("readYAML(%s) > %w", path, err)
	}

	snapshot := s.prefs.LoadAll(ctx)
	var result ImportResult

	history := slices.Clone(snapshot.History)
	for _, word := range archive.History {
		if word == "" || slices.Contains(history, word) {
			result.HistorySkipped++
			continue
		}
		history = append(history, word)
		result.HistoryNew++
	}
	if len(history) > maxHistoryEntries {
		history = history[:maxHistoryEntries]
	}

	favorites := slices.Clone(snapshot.Favorites)
	for _, word := range archive.Favorites {
		if word == "" || slices.Contains(favorites, word) {
			result.FavoritesSkipped++
			continue
		}
		favorites = append(favorites, word)
		result.FavoritesNew++
	}

	if err := s.prefs.SaveHistory(ctx, history); err != nil {
		return nil, fmt.Errorf("prefs.SaveHistory > %w", err)
	}
	if err := s.prefs.SaveFavorites(ctx, favorites); err != nil {
		return nil, fmt.Errorf("prefs.SaveFavorites > %w", err)
	}

	fmt.Fprintf(s.writer, "Imported %d history entries (%d skipped), %d favorites (%d skipped)\n",
		result.HistoryNew, result.HistorySkipped, result.FavoritesNew, result.FavoritesSkipped)
	return &result, nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

func readYAML(path string, out interface{}) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(contents, out)
}
