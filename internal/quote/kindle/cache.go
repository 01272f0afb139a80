package kindle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	scraper "github.com/codeabiswas/quotescape/internal/scraper/kindle"
)

// loadCache reads the quotebook cache file. A missing or unreadable
// cache is not an error: acquisition starts empty and scrapes.
func loadCache(path string) scraper.Quotebook {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("error reading highlight cache")
		}
		return scraper.Quotebook{}
	}

	var quotebook scraper.Quotebook
	if err := json.Unmarshal(data, &quotebook); err != nil {
		logrus.WithError(err).Warn("error parsing highlight cache, starting empty")
		return scraper.Quotebook{}
	}

	logrus.WithField("books", len(quotebook)).Info("loaded highlights from cache")
	return quotebook
}

// saveCache overwrites the cache file with the full quotebook, creating
// parent directories as needed. The file's mtime becomes the freshness
// clock; no timestamp is serialized.
func saveCache(path string, quotebook scraper.Quotebook) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(quotebook, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding highlight cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing highlight cache: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"books": len(quotebook),
		"file":  path,
	}).Info("saved highlights to cache")
	return nil
}
