// Package kindle serves quotes from the user's Kindle highlights,
// refreshing a local cache through a scraping session when the
// configured cadence says it has gone stale.
package kindle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codeabiswas/quotescape/internal/config"
	"github.com/codeabiswas/quotescape/internal/quote"
	scraper "github.com/codeabiswas/quotescape/internal/scraper/kindle"
)

// ErrNoQuotes means no usable highlight exists in the dataset.
var ErrNoQuotes = errors.New("no kindle highlights found")

const authorMarker = "By:"

// Options are the CLI-provided knobs for one acquisition run.
type Options struct {
	Browser      string
	LoginTimeout time.Duration
	ForceRefresh bool
}

// Source acquires quotes from Kindle highlights. It loads the cache up
// front, refreshes it through the scraper when stale or forced, and
// falls back to stale data when a refresh fails.
type Source struct {
	cfg       *config.Config
	opts      Options
	cachePath string
	quotebook scraper.Quotebook

	// Swappable for tests.
	scrape func(ctx context.Context) (scraper.Quotebook, error)
	now    func() time.Time
}

func New(cfg *config.Config, opts Options) *Source {
	s := scraper.Scraper{
		SecretsPath:  cfg.Kindle.SecretsPath,
		Browser:      opts.Browser,
		LoginTimeout: opts.LoginTimeout,
	}
	src := &Source{
		cfg:       cfg,
		opts:      opts,
		cachePath: cfg.CachePath(),
		scrape:    s.Scrape,
		now:       time.Now,
	}
	src.quotebook = loadCache(src.cachePath)
	return src
}

func (s *Source) Name() string { return "kindle" }

// RequiresInternet reports whether the next Get will scrape.
func (s *Source) RequiresInternet() bool {
	return s.opts.ForceRefresh || s.cacheStale()
}

// Available verifies the secrets file exists and holds both fields.
func (s *Source) Available() (bool, string) {
	if _, err := scraper.LoadCredentials(s.cfg.Kindle.SecretsPath); err != nil {
		return false, err.Error()
	}
	if len(s.quotebook) == 0 {
		return true, "no cached Kindle highlights found, will scrape on first run"
	}
	return true, ""
}

// Get refreshes the cache if needed and returns one random highlight.
func (s *Source) Get(ctx context.Context) (quote.Quote, error) {
	if err := s.refreshIfNeeded(ctx); err != nil {
		return quote.Quote{}, err
	}
	return s.pick()
}

// cacheStale applies the freshness policy to the cache file's mtime.
// A missing cache is always stale.
func (s *Source) cacheStale() bool {
	info, err := os.Stat(s.cachePath)
	if err != nil {
		return true
	}
	return IsStale(Cadence(s.cfg.Kindle.RefreshFrequency), info.ModTime(), s.now())
}

// refreshIfNeeded runs the scraping pipeline when the cache is stale or
// a refresh is forced. On failure with a non-empty cached dataset the
// stale data is kept and the run continues; with an empty dataset the
// error is fatal. Persistence happens only after the whole pipeline
// succeeded, and a failed write is not fatal.
func (s *Source) refreshIfNeeded(ctx context.Context) error {
	switch {
	case s.opts.ForceRefresh:
		logrus.Info("force refresh requested, starting Kindle scraping")
	case s.cacheStale():
		logrus.Info("highlight cache is outdated, starting Kindle scraping")
	default:
		logrus.Info("highlight cache is up to date")
		return nil
	}

	fresh, err := s.scrape(ctx)
	if err != nil {
		if len(s.quotebook) == 0 {
			return fmt.Errorf("refreshing kindle highlights: %w", err)
		}
		logrus.WithError(err).Warn("refresh failed, using cached highlights")
		return nil
	}

	logrus.WithField("books", len(fresh)).Info("scraping complete")
	s.quotebook = fresh

	if err := saveCache(s.cachePath, fresh); err != nil {
		logrus.WithError(err).Warn("error saving highlight cache")
	}
	return nil
}

// pick selects one book uniformly at random, retrying once among the
// remaining books if the first has no excerpts, then one excerpt
// uniformly from the chosen book.
func (s *Source) pick() (quote.Quote, error) {
	if len(s.quotebook) == 0 {
		return quote.Quote{}, fmt.Errorf(
			"%w: ensure you have highlighted passages in your Kindle library "+
				"and that your credentials are correct", ErrNoQuotes)
	}

	keys := make([]string, 0, len(s.quotebook))
	for key := range s.quotebook {
		keys = append(keys, key)
	}

	i := rand.Intn(len(keys))
	key := keys[i]
	entry := s.quotebook[key]

	if len(entry.Excerpts) == 0 {
		remaining := append(keys[:i:i], keys[i+1:]...)
		if len(remaining) > 0 {
			key = remaining[rand.Intn(len(remaining))]
			entry = s.quotebook[key]
		}
	}
	if len(entry.Excerpts) == 0 {
		return quote.Quote{}, fmt.Errorf("%w: the selected books have no excerpts", ErrNoQuotes)
	}

	title, author := parseBookKey(key)
	return quote.Quote{
		Text:      entry.Excerpts[rand.Intn(len(entry.Excerpts))],
		Author:    author,
		BookTitle: title,
		CoverURL:  entry.CoverURL,
	}, nil
}

// parseBookKey splits the conventional "Title\nBy: Author" book key.
// Without the marker the whole key is the title and the author is unset.
func parseBookKey(key string) (title, author string) {
	title = strings.TrimSpace(key)
	i := strings.Index(key, "\n")
	if i < 0 {
		return title, ""
	}

	title = strings.TrimSpace(key[:i])
	line := key[i+1:]
	if j := strings.Index(line, "\n"); j >= 0 {
		line = line[:j]
	}
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, authorMarker) {
		author = strings.TrimSpace(line[len(authorMarker):])
	}
	return title, author
}
