// Package scrape turns parsed forum pages into typed entities. Every
// extractor is a pure function from a goquery document (plus the base URL
// used to resolve relative hrefs) to an entity from the model package.
//
// The selectors each extractor depends on are spelled out next to it, so
// that when the site layout changes the breakage is localized and the
// offending selector is easy to find.
package scrape

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseError reports a page that does not look the way the extractor
// expects: a mandatory element or attribute is missing. This means the site
// layout changed, not that the request failed, so callers should log the
// page context loudly instead of retrying.
type ParseError struct {
	Page    string
	Missing string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: missing %s", e.Page, e.Missing)
}

// Resolve canonicalizes href against base. Empty or malformed hrefs yield
// nil, callers treat that as "no URL" since optional links are legitimately
// absent on many pages.
func Resolve(base *url.URL, href string) *url.URL {
	if base == nil || href == "" {
		return nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return base.ResolveReference(ref)
}

var countSeparators = regexp.MustCompile(`[,. ]`)
var hiddenCount = regexp.MustCompile(`^-+$`)

// TrySanitizeInt parses a free-text counter such as "1,234", "1.234" or
// "1 234" into an integer, stripping locale thousand separators first. A
// lone dash (or a run of dashes) is the forum's "not applicable" marker and
// yields nil, as does anything non-numeric.
func TrySanitizeInt(text string) *int {
	cleaned := countSeparators.ReplaceAllString(strings.TrimSpace(text), "")
	if cleaned == "" || hiddenCount.MatchString(cleaned) {
		return nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &n
}

// queryID extracts the numeric query parameter named key from u.
func queryID(u *url.URL, key string) (int, bool) {
	if u == nil {
		return 0, false
	}
	raw := u.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// canonicalID reads the page's numeric identity from the `id` query
// parameter of its head link[rel=canonical] tag. Identifiers are never
// derived from list rows or invented client-side.
func canonicalID(doc *goquery.Document, base *url.URL, page string) (int, *url.URL, error) {
	href, ok := doc.Find("head link[rel=canonical]").Attr("href")
	if !ok {
		return 0, nil, &ParseError{Page: page, Missing: "head link[rel=canonical]"}
	}
	link := Resolve(base, href)
	if link == nil {
		return 0, nil, &ParseError{Page: page, Missing: "canonical link href"}
	}
	id, ok := queryID(link, "id")
	if !ok {
		return 0, nil, &ParseError{Page: page, Missing: "id parameter of canonical link"}
	}
	return id, link, nil
}

// ParsePagination reads the pagination widget `div#brdmain > div.linkst
// p.pagelink`: the highlighted strong element is the current page, the
// largest numeric label among the links is the page count. A page without
// the widget has exactly one page.
func ParsePagination(doc *goquery.Document) (currentPage, pageCount int) {
	currentPage, pageCount = 1, 1

	widget := doc.Find("div#brdmain > div.linkst p.pagelink").First()
	if widget.Length() == 0 {
		return
	}

	if cur := TrySanitizeInt(widget.Find("strong").First().Text()); cur != nil {
		currentPage = *cur
	}
	widget.Children().Each(func(_ int, s *goquery.Selection) {
		if n := TrySanitizeInt(ownText(s)); n != nil && *n > pageCount {
			pageCount = *n
		}
	})
	if currentPage > pageCount {
		pageCount = currentPage
	}
	return
}

// ownText collects the direct text children of a selection, without the
// text of nested elements.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	for _, node := range s.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// HarvestHiddenInputs copies every hidden input of the form matched by
// formSel, so a later POST can replay the server's CSRF tokens and friends
// verbatim.
func HarvestHiddenInputs(doc *goquery.Document, formSel string) map[string]string {
	fields := make(map[string]string)
	doc.Find(formSel + " input[type=hidden]").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			return
		}
		fields[name] = s.AttrOr("value", "")
	})
	return fields
}

// stripAction removes the `action` query parameter from a toggle link so
// the stored link can be reused for either direction of the toggle.
func stripAction(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	stripped := *u
	q := stripped.Query()
	q.Del("action")
	stripped.RawQuery = q.Encode()
	return &stripped
}
