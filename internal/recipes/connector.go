package recipes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrFetchFailed wraps any transport error or non-success status from the
// recipe site. Callers surface it; it is never swallowed into an empty
// result.
var ErrFetchFailed = errors.New("recipes: fetch failed")

// DefaultLimit bounds a search when the caller does not.
const DefaultLimit = 10

// defaultImageAttrs is the attribute chain tried on an image element,
// first non-empty wins. Kept as data so markup drift is a config edit.
var defaultImageAttrs = []string{"src", "data-src", "srcset", "data-srcset"}

// Summary is one external recipe hit.
type Summary struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url,omitempty"`
}

// Options configures a Connector.
type Options struct {
	BaseURL    string        // site origin, e.g. https://www.kurashiru.com
	SearchPath string        // search page path, e.g. /search
	PathPrefix string        // recipe link prefix, e.g. /recipes/
	UserAgent  string        // browser-like identification header
	Timeout    time.Duration // whole-request timeout
	ImageAttrs []string      // image attribute fallback chain
}

// Connector fetches a third-party recipe search page and extracts recipe
// summaries from its HTML. It is the only component that talks to an
// external network service.
type Connector struct {
	base       *url.URL
	searchPath string
	pathPrefix string
	userAgent  string
	imageAttrs []string
	client     *http.Client
}

// NewConnector builds a Connector, filling unset options with the
// kurashiru defaults.
func NewConnector(opts Options) (*Connector, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.kurashiru.com"
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("recipes: invalid base url: %w", err)
	}
	if opts.SearchPath == "" {
		opts.SearchPath = "/search"
	}
	if opts.PathPrefix == "" {
		opts.PathPrefix = "/recipes/"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/120.0.0.0 Safari/537.36"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if len(opts.ImageAttrs) == 0 {
		opts.ImageAttrs = defaultImageAttrs
	}

	return &Connector{
		base:       base,
		searchPath: opts.SearchPath,
		pathPrefix: opts.PathPrefix,
		userAgent:  opts.UserAgent,
		imageAttrs: opts.ImageAttrs,
		client:     &http.Client{Timeout: opts.Timeout},
	}, nil
}

// Search fetches the search page for keyword and returns up to limit recipe
// summaries in document order. An empty or whitespace-only keyword returns
// no results without touching the network.
func (c *Connector) Search(ctx context.Context, keyword string, limit int) ([]Summary, error) {
	if strings.TrimSpace(keyword) == "" {
		return []Summary{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	doc, err := c.fetch(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return c.extract(doc, limit), nil
}

func (c *Connector) fetch(ctx context.Context, keyword string) (*goquery.Document, error) {
	u := *c.base
	u.Path = c.searchPath
	u.RawQuery = url.Values{"query": {keyword}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return doc, nil
}

// extract pulls recipe anchors out of the page. Anchors whose href starts
// with the recipe path prefix are preferred; if the page has none, anchors
// inside article containers are tried instead, which survives moderate
// markup drift. Only the first limit anchors are considered; ones lacking
// a title or link are skipped, and no URL deduplication happens.
func (c *Connector) extract(doc *goquery.Document, limit int) []Summary {
	sel := doc.Find(fmt.Sprintf("a[href^=%q]", c.pathPrefix))
	if sel.Length() == 0 {
		sel = doc.Find("article a")
	}

	results := make([]Summary, 0, limit)
	processed := 0
	sel.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if processed >= limit {
			return false
		}
		processed++

		title := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		link := c.absolutize(href)
		if title == "" || link == "" {
			return true
		}

		results = append(results, Summary{
			Title:    title,
			URL:      link,
			ImageURL: c.imageFor(a),
		})
		return true
	})
	return results
}

// absolutize resolves a site-relative href against the site origin.
func (c *Connector) absolutize(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return c.base.Scheme + "://" + c.base.Host + href
	}
	return href
}

// imageFor finds the anchor's thumbnail: the first img element, falling
// back to a nested source element, trying the configured attribute chain.
func (c *Connector) imageFor(a *goquery.Selection) string {
	el := a.Find("img").First()
	if el.Length() == 0 {
		el = a.Find("source").First()
	}
	if el.Length() == 0 {
		return ""
	}
	for _, attr := range c.imageAttrs {
		if v, ok := el.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
