// Package kindle scrapes highlighted excerpts from Amazon's Kindle
// notebook through an automated browser session.
package kindle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// ErrExtraction means the notebook library never loaded. Per-book
// problems are logged and skipped, they never surface as this error.
var ErrExtraction = errors.New("kindle notebook library did not load")

const (
	bookSelector        = "div.kp-notebook-library-book"
	annotationsPane     = "#annotations"
	annotationsList     = "#kp-notebook-annotations"
	highlightSelector   = "#highlight"
	coverImageSelector  = ".kp-notebook-cover-image-border"
	coverSizeToken      = "_SY160"
	coverHiResToken     = "_SY2400"
	contentSettleTime   = 2 * time.Second
	annotationsWaitTime = 10 * time.Second
)

// Scraper runs the full acquisition pipeline: credentials, browser,
// login, extraction. It holds no state between runs.
type Scraper struct {
	SecretsPath  string
	Browser      string
	LoginTimeout time.Duration
}

// Scrape acquires the full quotebook from a live browser session. The
// session is closed on every exit path. Cancellation is checked at each
// stage boundary.
func (s Scraper) Scrape(ctx context.Context) (Quotebook, error) {
	creds, err := LoadCredentials(s.SecretsPath)
	if err != nil {
		return nil, err
	}

	logrus.Info("starting browser")
	session, err := Launch(s.Browser)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	page, err := session.rod.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	page = page.Context(ctx)

	if err := login(page, creds, s.LoginTimeout); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.Info("scraping highlights")
	quotebook, err := extract(page)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return quotebook, nil
}

// extract walks the notebook library and collects every book's cover
// and highlights. Books that fail individually are skipped; books with
// zero highlights are omitted.
func extract(page *rod.Page) (Quotebook, error) {
	library, err := page.Timeout(formWait).Element(librarySelector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	books, err := library.Elements(bookSelector)
	if err != nil || len(books) == 0 {
		// The notebook DOM is not under our control; fall back to a
		// generic scan of non-empty children.
		books = fallbackBookEntries(library)
	}
	logrus.WithField("books", len(books)).Info("found books with highlights")

	quotebook := Quotebook{}
	for _, book := range books {
		key, err := book.Text()
		if err != nil {
			logrus.WithError(err).Warn("error reading book entry")
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		if err := book.Click(proto.InputMouseButtonLeft, 1); err != nil {
			logrus.WithError(err).WithField("book", key).Warn("error opening book")
			continue
		}
		time.Sleep(contentSettleTime)

		cover := bookCover(page)
		excerpts := bookExcerpts(page)
		if len(excerpts) == 0 {
			logrus.WithField("book", key).Debug("no highlights, skipping")
			continue
		}

		quotebook[key] = Entry{CoverURL: cover, Excerpts: excerpts}
		logrus.WithFields(logrus.Fields{
			"book":       key,
			"highlights": len(excerpts),
		}).Info("scraped book")
	}

	return quotebook, nil
}

func fallbackBookEntries(library *rod.Element) []*rod.Element {
	all, err := library.Elements("div")
	if err != nil {
		return nil
	}
	var books []*rod.Element
	for _, el := range all {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			books = append(books, el)
		}
	}
	return books
}

// bookCover reads the currently open book's cover URL and upgrades it
// to the high-resolution variant. A missing cover is not an error.
func bookCover(page *rod.Page) string {
	has, pane, err := page.Has(annotationsPane)
	if err != nil || !has {
		logrus.Debug("annotations pane not found, no cover")
		return ""
	}
	has, img, err := pane.Has(coverImageSelector)
	if err != nil || !has {
		logrus.Debug("cover image not found")
		return ""
	}
	src, err := img.Attribute("src")
	if err != nil || src == nil || *src == "" {
		return ""
	}
	return strings.Replace(*src, coverSizeToken, coverHiResToken, 1)
}

// bookExcerpts reads all highlight texts for the currently open book.
func bookExcerpts(page *rod.Page) []string {
	annotations, err := page.Timeout(annotationsWaitTime).Element(annotationsList)
	if err != nil {
		logrus.WithError(err).Warn("annotations did not load")
		return nil
	}

	elements, err := annotations.Elements(highlightSelector)
	if err != nil {
		logrus.WithError(err).Warn("error listing highlights")
		return nil
	}

	var excerpts []string
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			excerpts = append(excerpts, text)
		}
	}
	return excerpts
}
