package populate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// defaultRating is a placeholder until the storefront exposes real age
// ratings on listing pages.
const defaultRating = "BR0"

const shortDescriptionLimit = 160

// Enrichment carries the descriptive fields scraped from a game's
// detail page. They are optional: a game created without them is valid.
type Enrichment struct {
	Rating           string
	ShortDescription string
	Description      string
}

// Enricher fetches supplementary fields for one game slug. An error
// means "no enrichment"; callers proceed without the fields.
type Enricher interface {
	GameInfo(ctx context.Context, slug string) (*Enrichment, error)
}

// DetailEnricher scrapes the storefront's per-slug detail page.
// Detail pages are not guaranteed to exist or to keep their shape, so
// every failure path is an expected condition.
type DetailEnricher struct {
	BaseURL string
	Client  *http.Client
}

func NewDetailEnricher(baseURL string) *DetailEnricher {
	return &DetailEnricher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (e *DetailEnricher) GameInfo(ctx context.Context, slug string) (*Enrichment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.BaseURL+"/game/"+slug, nil)
	if err != nil {
		return nil, fmt.Errorf("detail %s: build request: %w", slug, err)
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detail %s: request: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail %s: status %d", slug, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("detail %s: parse: %w", slug, err)
	}

	sel := doc.Find(".description").First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("detail %s: no description block", slug)
	}

	markup, err := sel.Html()
	if err != nil {
		return nil, fmt.Errorf("detail %s: inner html: %w", slug, err)
	}

	return &Enrichment{
		Rating:           defaultRating,
		ShortDescription: truncateRunes(strings.TrimSpace(sel.Text()), shortDescriptionLimit),
		Description:      markup,
	}, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
