package kindle

import (
	"encoding/json"
	"fmt"
)

// Entry is one book's scraped data: its cover image URL (may be empty)
// and its highlighted excerpts in page order.
type Entry struct {
	CoverURL string
	Excerpts []string
}

// Quotebook maps a book key ("Title\nBy: Author") to its entry. Replaced
// wholesale on every successful scrape, never merged.
type Quotebook map[string]Entry

// MarshalJSON writes the cache wire format: a 2-element array of
// [coverURL, [excerpt, ...]].
func (e Entry) MarshalJSON() ([]byte, error) {
	excerpts := e.Excerpts
	if excerpts == nil {
		excerpts = []string{}
	}
	return json.Marshal([2]interface{}{e.CoverURL, excerpts})
}

// UnmarshalJSON reads the 2-element array form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("quotebook entry must be a 2-element array, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.CoverURL); err != nil {
		return fmt.Errorf("quotebook entry cover: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Excerpts); err != nil {
		return fmt.Errorf("quotebook entry excerpts: %w", err)
	}
	return nil
}
