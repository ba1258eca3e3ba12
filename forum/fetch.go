package forum

import (
	"bytes"
	"context"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// PageRef names one page of a paginated entity. Link is the canonical link
// of the entity; Page selects the page to load. Custom, when set, overrides
// both: it is an arbitrary URL that leads to the same kind of page, e.g. a
// "jump to unread" pointer or a deep link. A custom link is one-shot, the
// caller must not resupply it when refreshing the resulting view.
type PageRef struct {
	Link   *url.URL
	Custom *url.URL
	Page   int
}

// target builds the URL to fetch: the custom link verbatim, or the
// canonical link with the `p` page parameter appended.
func (r PageRef) target() *url.URL {
	if r.Custom != nil {
		return r.Custom
	}
	if r.Link == nil {
		return nil
	}
	page := r.Page
	if page < 1 {
		page = 1
	}
	paged := *r.Link
	q := paged.Query()
	q.Set("p", strconv.Itoa(page))
	paged.RawQuery = q.Encode()
	return &paged
}

// getDocument GETs u and parses the body as HTML. Anything but a 2xx is a
// TransportError carrying the HTTP status text, never retried here.
func (c *Client) getDocument(ctx context.Context, op string, u *url.URL) (*goquery.Document, *resty.Response, error) {
	res, err := c.http.R().SetContext(ctx).Get(u.String())
	if err != nil {
		return nil, nil, &TransportError{Op: op, Err: err}
	}
	if !res.IsSuccess() {
		return nil, nil, &TransportError{Op: op, Status: res.Status()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

// postForm submits an application/x-www-form-urlencoded body to u.
func (c *Client) postForm(ctx context.Context, op string, u *url.URL, fields map[string]string) (*goquery.Document, *resty.Response, error) {
	res, err := c.http.R().SetContext(ctx).SetFormData(fields).Post(u.String())
	if err != nil {
		return nil, nil, &TransportError{Op: op, Err: err}
	}
	if !res.IsSuccess() {
		return nil, nil, &TransportError{Op: op, Status: res.Status()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

// requestedURL reports which URL actually served res, after redirects.
func requestedURL(res *resty.Response) *url.URL {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL
	}
	return nil
}
