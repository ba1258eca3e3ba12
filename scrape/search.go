package scrape

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/avolkau/lurk/model"
)

// searchName reads the caption of a search page from the last breadcrumb.
//
// Selector: `div#brdmain > div.linkst ul.crumbs > li:last-child strong`.
func searchName(doc *goquery.Document) (string, error) {
	name := doc.Find("div#brdmain > div.linkst ul.crumbs > li:last-child strong").Text()
	if name == "" {
		return "", &ParseError{Page: "search", Missing: "ul.crumbs caption"}
	}
	return name, nil
}

// ParseSearchTopics extracts a topic search page: favorites, replies, new,
// recent, or a keyword search shown as topics. The link of the results is
// filled in by the caller, which knows the canonical search URL.
func ParseSearchTopics(doc *goquery.Document, base *url.URL) (*model.SearchResults[model.ForumTopicDesc], error) {
	name, err := searchName(doc)
	if err != nil {
		return nil, err
	}

	currentPage, pageCount := ParsePagination(doc)

	return &model.SearchResults[model.ForumTopicDesc]{
		Name:        name,
		PageCount:   pageCount,
		CurrentPage: currentPage,
		Results:     ParseTopics(doc, base, SearchListing),
	}, nil
}

// ParseSearchMessages extracts a keyword search page shown as messages.
// Message boxes on search pages use the same markup as topic pages.
func ParseSearchMessages(doc *goquery.Document, base *url.URL) (*model.SearchResults[model.ForumMessage], error) {
	name, err := searchName(doc)
	if err != nil {
		return nil, err
	}

	currentPage, pageCount := ParsePagination(doc)

	messages, err := ParseMessages(doc, base)
	if err != nil {
		return nil, err
	}

	return &model.SearchResults[model.ForumMessage]{
		Name:        name,
		PageCount:   pageCount,
		CurrentPage: currentPage,
		Results:     messages,
	}, nil
}

// ParseQuote reads the pre-filled reply text from a quote composer page.
//
// Selector: `form#post textarea[name=req_message]`.
func ParseQuote(doc *goquery.Document) (string, error) {
	area := doc.Find("form#post textarea[name=req_message]")
	if area.Length() == 0 {
		return "", &ParseError{Page: "quote composer", Missing: "form#post textarea[name=req_message]"}
	}
	return area.Text(), nil
}

// ParseResultLink reads the redirect target from the "message saved, you
// will be redirected" confirmation page a successful post returns.
//
// Selector: `div#brdmain div.box a`.
func ParseResultLink(doc *goquery.Document, base *url.URL) (*url.URL, error) {
	link := Resolve(base, doc.Find("div#brdmain div.box a").First().AttrOr("href", ""))
	if link == nil {
		return nil, &ParseError{Page: "post confirmation", Missing: "div#brdmain div.box a"}
	}
	return link, nil
}
