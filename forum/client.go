// Package forum is the network engine of lurk: it owns the HTTP transport,
// the authenticated session and every read and write operation against a
// FluxBB-style forum. All methods are safe for concurrent use and block
// until the server answers, offloading to a background goroutine is the
// caller's business.
package forum

import (
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/caffix/cloudflare-roundtripper/cfrt"
	"github.com/go-resty/resty/v2"

	"github.com/avolkau/lurk/scrape"
	"github.com/avolkau/lurk/session"
	"github.com/avolkau/lurk/utils"
)

const defaultUserAgent = "lurk/1.0"

// Endpoints are the shortcut search URLs derived from the base origin. They
// are recomputed whenever the origin changes.
type Endpoints struct {
	FavoriteTopics *url.URL
	RepliedTopics  *url.URL
	NewTopics      *url.URL
	RecentTopics   *url.URL
}

type Client struct {
	http  *resty.Client
	store *session.Store

	// sleep is the anti-bot delay hook, swapped for a fake in tests.
	sleep func(time.Duration)

	uploadURL string

	mu        sync.Mutex
	base      *url.URL
	endpoints Endpoints
}

type Options struct {
	// BaseURL is the forum origin, e.g. "https://holywarsoo.net". It can
	// be changed later with SetBaseURL.
	BaseURL string

	// Store persists cookies and credentials. Required.
	Store *session.Store

	// UserAgent overrides the fixed client identity header.
	UserAgent string

	// Sleep replaces time.Sleep for the write-operation delay. Tests use
	// this to verify the delay without waiting it out.
	Sleep func(time.Duration)

	// UploadURL overrides the image upload endpoint, which defaults to the
	// imgur API. Tests point it at a local server.
	UploadURL string
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	uploadURL := opts.UploadURL
	if uploadURL == "" {
		uploadURL = imgurUploadURL
	}

	httpClient := resty.New()
	httpClient.SetCookieJar(opts.Store)
	httpClient.SetHeader("User-Agent", userAgent)
	// Connect, response and overall deadlines are bounded independently;
	// an unbounded call is a defect.
	httpClient.SetTimeout(90 * time.Second)
	transport, err := cfrt.New(&http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 15 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	httpClient.GetClient().Transport = transport

	c := &Client{
		http:      httpClient,
		store:     opts.Store,
		sleep:     sleep,
		uploadURL: uploadURL,
	}
	if err := c.setBase(utils.TrimmedURL(base)); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBaseURL switches the client to another forum installation at runtime.
// The derived shortcut endpoints are recomputed from the new origin.
func (c *Client) SetBaseURL(baseURL string) error {
	base, err := url.Parse(baseURL)
	if err != nil {
		return err
	}
	return c.setBase(utils.TrimmedURL(base))
}

func (c *Client) setBase(base *url.URL) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = base
	c.endpoints = Endpoints{
		FavoriteTopics: scrape.Resolve(base, "search.php?action=show_favorites"),
		RepliedTopics:  scrape.Resolve(base, "search.php?action=show_replies"),
		NewTopics:      scrape.Resolve(base, "search.php?action=show_new"),
		RecentTopics:   scrape.Resolve(base, "search.php?action=show_recent"),
	}
	return nil
}

// BaseURL returns the current forum origin.
func (c *Client) BaseURL() *url.URL {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base
}

// Endpoints returns the shortcut search URLs for the current origin.
func (c *Client) Endpoints() Endpoints {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoints
}

// Resolve canonicalizes a possibly relative href against the forum origin.
// Empty and malformed hrefs resolve to nil rather than an error, absent
// optional links are a fact of life on listing pages.
func (c *Client) Resolve(href string) *url.URL {
	return scrape.Resolve(c.BaseURL(), href)
}
