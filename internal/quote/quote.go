package quote

import "context"

// Quote is one rendered-ready quote with its optional metadata.
type Quote struct {
	Text      string `json:"text"`
	Author    string `json:"author,omitempty"`
	BookTitle string `json:"book_title,omitempty"`
	CoverURL  string `json:"cover_url,omitempty"`
}

// AuthorDisplay returns the author name for display, defaulting to
// "Unknown" when the quote carries no author.
func (q Quote) AuthorDisplay() string {
	if q.Author == "" {
		return "Unknown"
	}
	return q.Author
}

// Source produces quotes from one backing store (web API, local file,
// scraped highlights). Implementations own their availability checks and
// any caching behind Get.
type Source interface {
	// Name identifies the source in config and CLI flags.
	Name() string

	// Available reports whether the source is usable right now. The
	// returned message explains why not, or gives a non-fatal hint.
	Available() (bool, string)

	// Get returns one quote. Blocking work (network, browser automation)
	// honours ctx cancellation.
	Get(ctx context.Context) (Quote, error)

	// RequiresInternet reports whether the next Get needs connectivity.
	RequiresInternet() bool
}
