package kindle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codeabiswas/quotescape/internal/config"
	scraper "github.com/codeabiswas/quotescape/internal/scraper/kindle"
)

func testSource(t *testing.T, cadence string) *Source {
	t.Helper()
	cfg := &config.Config{
		Kindle: config.KindleSettings{RefreshFrequency: cadence},
	}
	return &Source{
		cfg:       cfg,
		cachePath: filepath.Join(t.TempDir(), "kindle_quotebook.json"),
		quotebook: scraper.Quotebook{},
		now:       time.Now,
	}
}

func TestFallbackToStaleCacheOnRefreshFailure(t *testing.T) {
	src := testSource(t, "always")
	src.quotebook = scraper.Quotebook{
		"Dune\nBy: Frank Herbert": {CoverURL: "http://example.com/c.jpg", Excerpts: []string{"Fear is the mind-killer."}},
	}
	src.scrape = func(context.Context) (scraper.Quotebook, error) {
		return nil, errors.New("login timed out")
	}

	q, err := src.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Fear is the mind-killer.", q.Text)
	require.Equal(t, "Frank Herbert", q.Author)
	require.Equal(t, "Dune", q.BookTitle)
}

func TestRefreshFailureWithEmptyCacheIsFatal(t *testing.T) {
	src := testSource(t, "always")
	scrapeErr := errors.New("login timed out")
	src.scrape = func(context.Context) (scraper.Quotebook, error) {
		return nil, scrapeErr
	}

	_, err := src.Get(context.Background())
	require.ErrorIs(t, err, scrapeErr)
}

func TestForceRefreshOverridesFreshCache(t *testing.T) {
	src := testSource(t, "monthly")
	src.opts.ForceRefresh = true
	require.NoError(t, saveCache(src.cachePath, scraper.Quotebook{
		"Old": {Excerpts: []string{"stale"}},
	}))
	src.quotebook = loadCache(src.cachePath)

	scraped := false
	src.scrape = func(context.Context) (scraper.Quotebook, error) {
		scraped = true
		return scraper.Quotebook{"New": {Excerpts: []string{"fresh"}}}, nil
	}

	q, err := src.Get(context.Background())
	require.NoError(t, err)
	require.True(t, scraped)
	require.Equal(t, "fresh", q.Text)
}

func TestFreshCacheSkipsScraping(t *testing.T) {
	src := testSource(t, "monthly")
	require.NoError(t, saveCache(src.cachePath, scraper.Quotebook{
		"Cached": {Excerpts: []string{"cached quote"}},
	}))
	src.quotebook = loadCache(src.cachePath)
	src.scrape = func(context.Context) (scraper.Quotebook, error) {
		t.Fatal("scrape must not run for a fresh cache")
		return nil, nil
	}

	q, err := src.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cached quote", q.Text)
}

func TestSuccessfulRefreshReplacesAndPersists(t *testing.T) {
	src := testSource(t, "always")
	src.quotebook = scraper.Quotebook{"Old": {Excerpts: []string{"stale"}}}
	src.scrape = func(context.Context) (scraper.Quotebook, error) {
		return scraper.Quotebook{"New": {Excerpts: []string{"fresh"}}}, nil
	}

	q, err := src.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresh", q.Text)

	persisted := loadCache(src.cachePath)
	require.Equal(t, scraper.Quotebook{"New": {Excerpts: []string{"fresh"}}}, persisted)
}

func TestPickSkipsEmptyEntry(t *testing.T) {
	src := testSource(t, "monthly")
	src.quotebook = scraper.Quotebook{
		"A": {Excerpts: []string{}},
		"B": {CoverURL: "cover", Excerpts: []string{"hello"}},
	}

	// Selection is random; the empty entry must never surface.
	for i := 0; i < 50; i++ {
		q, err := src.pick()
		require.NoError(t, err)
		require.Equal(t, "hello", q.Text)
	}
}

func TestPickAllEntriesEmpty(t *testing.T) {
	src := testSource(t, "monthly")
	src.quotebook = scraper.Quotebook{"A": {Excerpts: []string{}}}

	_, err := src.pick()
	require.ErrorIs(t, err, ErrNoQuotes)
}

func TestPickEmptyQuotebook(t *testing.T) {
	src := testSource(t, "monthly")
	_, err := src.pick()
	require.ErrorIs(t, err, ErrNoQuotes)
}

func TestParseBookKey(t *testing.T) {
	cases := []struct {
		key    string
		title  string
		author string
	}{
		{"Dune\nBy: Frank Herbert", "Dune", "Frank Herbert"},
		{"Untitled Notes", "Untitled Notes", ""},
		{"Dune\nFrank Herbert", "Dune", ""},
		{"Dune\nBy:   Frank Herbert  ", "Dune", "Frank Herbert"},
		{"Dune\nBy: Frank Herbert\nextra", "Dune", "Frank Herbert"},
	}

	for _, test := range cases {
		title, author := parseBookKey(test.key)
		require.Equal(t, test.title, title, "key %q", test.key)
		require.Equal(t, test.author, author, "key %q", test.key)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")
	quotebook := scraper.Quotebook{
		"Dune\nBy: Frank Herbert": {
			CoverURL: "https://example.com/cover._SY2400_.jpg",
			Excerpts: []string{"first", "second"},
		},
		"Untitled Notes": {Excerpts: []string{"loose thought"}},
	}

	require.NoError(t, saveCache(path, quotebook))
	require.Equal(t, quotebook, loadCache(path))
}

func TestCacheMissingOrCorruptIsEmpty(t *testing.T) {
	require.Empty(t, loadCache(filepath.Join(t.TempDir(), "absent.json")))

	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	require.Empty(t, loadCache(path))
}

func TestCacheStaleWithoutFile(t *testing.T) {
	src := testSource(t, "annually")
	require.True(t, src.cacheStale())
}
