// Package custom reads quotes from a user-maintained JSON quotebook.
package custom

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/codeabiswas/quotescape/internal/quote"
)

const formatHint = `{
  "Author Name": ["quote 1", "quote 2"],
  ...
}`

// Source serves quotes from a local JSON file mapping author names to
// lists of quotes.
type Source struct {
	path      string
	quotebook map[string][]string
}

func New(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Name() string { return "custom" }

func (s *Source) RequiresInternet() bool { return false }

func (s *Source) Available() (bool, string) {
	if _, err := os.Stat(s.path); err != nil {
		return false, fmt.Sprintf(
			"custom quotebook not found at %s, create it with your quotes in JSON format:\n%s",
			s.path, formatHint)
	}
	if err := s.load(); err != nil {
		return false, err.Error()
	}
	if len(s.quotebook) == 0 {
		return false, fmt.Sprintf("custom quotebook at %s is empty", s.path)
	}
	return true, ""
}

func (s *Source) Get(_ context.Context) (quote.Quote, error) {
	if s.quotebook == nil {
		if err := s.load(); err != nil {
			return quote.Quote{}, err
		}
	}
	if len(s.quotebook) == 0 {
		return quote.Quote{}, fmt.Errorf("custom quotebook is empty, add quotes to %s", s.path)
	}

	authors := make([]string, 0, len(s.quotebook))
	for author := range s.quotebook {
		authors = append(authors, author)
	}
	author := authors[rand.Intn(len(authors))]
	quotes := s.quotebook[author]
	if len(quotes) == 0 {
		return quote.Quote{}, fmt.Errorf("author %q has no quotes in %s", author, s.path)
	}

	return quote.Quote{
		Text:   quotes[rand.Intn(len(quotes))],
		Author: author,
	}, nil
}

func (s *Source) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading custom quotebook: %w", err)
	}

	var book map[string][]string
	if err := json.Unmarshal(data, &book); err != nil {
		return fmt.Errorf("invalid JSON in custom quotebook at %s: %w", s.path, err)
	}

	for author, quotes := range book {
		if len(quotes) == 0 {
			return fmt.Errorf("author %q has no quotes in custom quotebook", author)
		}
	}

	s.quotebook = book
	logrus.WithField("authors", len(book)).Debug("loaded custom quotebook")
	return nil
}
