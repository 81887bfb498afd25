package wiki

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/CyberAustin/AFSCbot/internal/ports"
)

const wikiPathMarker = "/r/AirForce/wiki/"

// LinkTable scrapes the subreddit wiki index into a base-code → URL map
// used to decorate annotations with job-page links.
type LinkTable struct {
	indexURL  string
	userAgent string
	client    *http.Client
}

var _ ports.LinkSource = (*LinkTable)(nil)

// NewLinkTable wires an HTTP client; a nil client gets a sane timeout.
func NewLinkTable(indexURL, userAgent string, client *http.Client) *LinkTable {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &LinkTable{indexURL: indexURL, userAgent: userAgent, client: client}
}

// Links fetches the wiki index and collects every anchor pointing at a
// wiki job page, keyed by the uppercased final path segment. Not every
// link targets a jobs subpage, so the whole wiki path is accepted.
func (l *LinkTable) Links(ctx context.Context) (map[string]string, error) {
	doc, err := l.fetchDocument(ctx, l.indexURL)
	if err != nil {
		return nil, err
	}

	links := map[string]string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, wikiPathMarker) {
			return
		}
		trimmed := strings.TrimSuffix(href, "/")
		code := strings.ToUpper(trimmed[strings.LastIndex(trimmed, "/")+1:])
		if code == "" {
			return
		}
		links[code] = href
	})

	return links, nil
}

func (l *LinkTable) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request wiki index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki index returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse wiki index: %w", err)
	}

	return doc, nil
}
