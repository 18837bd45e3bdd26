package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores raw search responses on disk so previously looked up
// words stay available without a network round trip.
type FileCache struct {
	rootDir string
}

// NewFileCache creates a FileCache rooted at cacheDirectory.
func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *FileCache) filePath(key string) string {
	// words come from user input; keep them out of path syntax
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '.':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(cache.rootDir, sanitized+".json")
}

// Fetch returns the cached contents for key, calling f and storing its
// result on a cache miss. A failed fetch stores nothing.
func (cache *FileCache) Fetch(key string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(key)
	if contents, err := os.ReadFile(localFilePath); err == nil {
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	if err := os.WriteFile(localFilePath, contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile > %w", err)
	}
	return contents, nil
}
