// Package random fetches quotes from The Quotes Hub API.
package random

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/codeabiswas/quotescape/internal/quote"
)

const (
	apiURL         = "https://thequoteshub.com/api/random-quote"
	requestTimeout = 10 * time.Second
	probeTimeout   = 3 * time.Second
)

type apiResponse struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Topic  string `json:"topic"`
}

// Source fetches a random quote over HTTP. Stateless, no caching.
type Source struct {
	http *resty.Client
	url  string
}

func New() *Source {
	return &Source{
		http: resty.New().SetTimeout(requestTimeout),
		url:  apiURL,
	}
}

func (s *Source) Name() string { return "random" }

func (s *Source) RequiresInternet() bool { return true }

func (s *Source) Available() (bool, string) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	res, err := s.http.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return false, fmt.Sprintf("quotes API is not accessible: %v", err)
	}
	if res.IsError() {
		return false, fmt.Sprintf("quotes API returned status %d", res.StatusCode())
	}
	return true, ""
}

func (s *Source) Get(ctx context.Context) (quote.Quote, error) {
	var body apiResponse
	res, err := s.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get(s.url)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("fetching random quote: %w", err)
	}
	if res.IsError() {
		return quote.Quote{}, fmt.Errorf("quotes API returned status %d", res.StatusCode())
	}

	text := strings.TrimSpace(body.Text)
	if text == "" {
		return quote.Quote{}, fmt.Errorf("quotes API returned no quote text")
	}

	author := normalizeAuthor(body.Author)

	logrus.WithFields(logrus.Fields{
		"author": author,
		"topic":  body.Topic,
	}).Debug("fetched random quote")

	return quote.Quote{Text: text, Author: author}, nil
}

// normalizeAuthor trims the author name and drops the placeholder values
// the API uses for unattributed quotes.
func normalizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	switch author {
	case "", "Unknown", "unknown", "Anonymous":
		return ""
	}
	return author
}
