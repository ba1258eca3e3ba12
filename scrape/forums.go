package scrape

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/avolkau/lurk/model"
)

// ParseForumList extracts the forum listing from the landing page.
//
// Selectors: `div#brdmain > div.blocktable` per category block, `h2 > span`
// for the category header, forum rows as in parseForumRows. The category of
// a header applies to every forum listed under it until the next header.
func ParseForumList(doc *goquery.Document, base *url.URL) ([]model.ForumDesc, error) {
	boards := doc.Find("div#brdmain > div.blocktable")
	if boards.Length() == 0 {
		return nil, &ParseError{Page: "forum list", Missing: "div#brdmain > div.blocktable"}
	}

	var forums []model.ForumDesc
	boards.Each(func(_ int, board *goquery.Selection) {
		category := board.Find("h2 > span").First().Text()
		forums = append(forums, parseForumRows(board, base, category)...)
	})
	return forums, nil
}

// ParseSubforums extracts the subforum listing nested inside a forum page.
// Subforums never carry a category.
//
// Selector: `div.subforumlist`, rows as in parseForumRows. A forum without
// subforums legitimately has no such element.
func ParseSubforums(doc *goquery.Document, base *url.URL) []model.ForumDesc {
	list := doc.Find("div.subforumlist").First()
	if list.Length() == 0 {
		return nil
	}
	return parseForumRows(list, base, "")
}

// parseForumRows walks the row markup shared by the landing page and
// subforum lists.
//
// Selectors per row `div.inbox > table > tbody > tr[class^=row]`:
// name/link `td.tcl div > h3 > a`, summary `td.tcl div.forumdesc`, topic
// and message counters `td.tc2`/`td.tc3`, last message `td.tcr > a` and its
// date `td.tcr > span`.
func parseForumRows(where *goquery.Selection, base *url.URL, category string) []model.ForumDesc {
	var forums []model.ForumDesc
	where.Find("div.inbox > table > tbody > tr[class^=row]").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td.tcl div > h3 > a").First()
		forumURL := Resolve(base, link.AttrOr("href", ""))
		if forumURL == nil {
			// a row without a forum link is a divider, not a forum
			return
		}

		lastMessage := row.Find("td.tcr > a").First()

		forums = append(forums, model.ForumDesc{
			Name:            link.Text(),
			Link:            forumURL,
			Subtext:         row.Find("td.tcl div.forumdesc").Text(),
			Category:        category,
			LastMessageName: lastMessage.Text(),
			LastMessageLink: Resolve(base, lastMessage.AttrOr("href", "")),
			LastMessageDate: row.Find("td.tcr > span").First().Text(),
			TopicCount:      TrySanitizeInt(row.Find("td.tc2").Text()),
			MessageCount:    TrySanitizeInt(row.Find("td.tc3").Text()),
		})
	})
	return forums
}

// ParseForumPage extracts a fully loaded forum from its own page.
//
// Selectors: canonical link and `head title` for identity, `div#brdmain
// div.linksb p.postlink a[href^=post.php]` for writability, pagination and
// topic rows as in ParsePagination/ParseTopics.
func ParseForumPage(doc *goquery.Document, base *url.URL) (*model.Forum, error) {
	id, link, err := canonicalID(doc, base, "forum")
	if err != nil {
		return nil, err
	}

	currentPage, pageCount := ParsePagination(doc)

	return &model.Forum{
		ID:          id,
		Name:        doc.Find("head title").Text(),
		Link:        link,
		Writable:    doc.Find("div#brdmain div.linksb p.postlink a[href^='post.php']").Length() > 0,
		PageCount:   pageCount,
		CurrentPage: currentPage,
		Subforums:   ParseSubforums(doc, base),
		Topics:      ParseTopics(doc, base, ForumListing),
	}, nil
}
