package recipes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<!DOCTYPE html>
<html><body>
<a href="/recipes/r1"><img src="https://img.example/r1.jpg"><span>Chicken Curry</span></a>
<a href="/recipes/r2"><img data-src="https://img.example/r2.jpg">Chicken Salad</a>
<a href="/recipes/r3"></a>
<a href="/recipes/r4"><source srcset="https://img.example/r4.jpg">Fried Chicken</a>
<a href="/about">About Us</a>
</body></html>`

func newTestConnector(t *testing.T, handler http.Handler) (*Connector, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewConnector(Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c, srv
}

func TestSearchExtractsSummaries(t *testing.T) {
	c, srv := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "chicken", r.URL.Query().Get("query"))
		w.Write([]byte(searchPage))
	}))

	got, err := c.Search(context.Background(), "chicken", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Chicken Curry", got[0].Title)
	assert.Equal(t, srv.URL+"/recipes/r1", got[0].URL)
	assert.Equal(t, "https://img.example/r1.jpg", got[0].ImageURL)

	// data-src is picked up when src is absent.
	assert.Equal(t, "https://img.example/r2.jpg", got[1].ImageURL)

	// r3 has no title and is skipped; r4 gets its image from a source tag.
	assert.Equal(t, "Fried Chicken", got[2].Title)
	assert.Equal(t, "https://img.example/r4.jpg", got[2].ImageURL)
}

func TestSearchLimitCountsAnchorsProcessed(t *testing.T) {
	c, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPage))
	}))

	got, err := c.Search(context.Background(), "chicken", 3)
	require.NoError(t, err)

	// The third anchor has no title, so a limit of three yields two results
	// rather than reaching further into the page.
	require.Len(t, got, 2)
	assert.Equal(t, "Chicken Curry", got[0].Title)
	assert.Equal(t, "Chicken Salad", got[1].Title)
}

func TestSearchEmptyKeywordSkipsNetwork(t *testing.T) {
	var hits int32
	c, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))

	for _, kw := range []string{"", "   ", "\t\n"} {
		got, err := c.Search(context.Background(), kw, 5)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestSearchArticleFallback(t *testing.T) {
	page := `<html><body>
<article><a href="/r/abc"><img src="/thumb.jpg">Omelette</a></article>
<article><a href="https://other.example/r/def">Scrambled Eggs</a></article>
</body></html>`
	c, srv := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))

	got, err := c.Search(context.Background(), "egg", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Omelette", got[0].Title)
	assert.Equal(t, srv.URL+"/r/abc", got[0].URL)

	// Absolute hrefs pass through untouched.
	assert.Equal(t, "https://other.example/r/def", got[1].URL)
}

func TestSearchNoMatches(t *testing.T) {
	c, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))

	got, err := c.Search(context.Background(), "chicken", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchServerError(t *testing.T) {
	c, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.Search(context.Background(), "chicken", 5)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewConnector(Options{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "chicken", 5)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestSearchSendsUserAgent(t *testing.T) {
	var ua string
	c, _ := newTestConnector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(searchPage))
	}))

	_, err := c.Search(context.Background(), "chicken", 1)
	require.NoError(t, err)
	assert.Contains(t, ua, "Mozilla/5.0")
}

func TestNewConnectorDefaults(t *testing.T) {
	c, err := NewConnector(Options{})
	require.NoError(t, err)
	assert.Equal(t, "www.kurashiru.com", c.base.Host)
	assert.Equal(t, "/search", c.searchPath)
	assert.Equal(t, "/recipes/", c.pathPrefix)
	assert.Equal(t, defaultImageAttrs, c.imageAttrs)
}

func TestNewConnectorBadBaseURL(t *testing.T) {
	_, err := NewConnector(Options{BaseURL: "://not a url"})
	assert.Error(t, err)
}
