// Package site fetches pages from the live portfolio site.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nikbrunner/folio/internal/transition"
)

const defaultTimeout = 10 * time.Second

// maxBodySize caps how much of a page is read.
const maxBodySize = 4 << 20

var (
	ErrNoContent = errors.New("page has no main content")
	ErrRequest   = errors.New("site request failed")
)

// Client fetches portfolio routes relative to a base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// NewClient creates a Client for the site at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid site URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "folio/1.0 (portfolio viewer)",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the site's base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL returns the absolute URL of route.
func (c *Client) URL(route transition.Route) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + route.Path()
	return u.String()
}

// Page is the main content of one route.
type Page struct {
	Route transition.Route
	Title string
	HTML  string // inner HTML of the content container
}

// Text renders the page content as plain text. Content that renders to
// nothing returns ErrNoContent.
func (p *Page) Text() (string, error) {
	text, err := Text(p.HTML)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoContent
	}
	return text, nil
}

// FetchHTML returns the raw HTML document of route.
func (c *Client) FetchHTML(ctx context.Context, route transition.Route) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(route), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: status %d", ErrRequest, route.Path(), resp.StatusCode)
	}

	return body, nil
}

// FetchPage fetches route and extracts its main content.
func (c *Client) FetchPage(ctx context.Context, route transition.Route) (*Page, error) {
	body, err := c.FetchHTML(ctx, route)
	if err != nil {
		return nil, err
	}
	page, err := ExtractPage(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", route.Path(), err)
	}
	page.Route = route
	return page, nil
}

// ExtractPage finds the content container of a page document: the inner
// wrapper of the main element when present, otherwise the main element itself.
func ExtractPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	content := doc.Find("main.main-content .main-content-inner").First()
	if content.Length() == 0 {
		content = doc.Find("main.main-content").First()
	}

	inner, err := content.Html()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(inner) == "" {
		return nil, ErrNoContent
	}

	return &Page{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		HTML:  inner,
	}, nil
}
