package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/avolkau/lurk/model"
)

// ListingKind tells ParseTopics which table layout the page uses: search
// listings insert a forum column, which shifts the meaning of the numeric
// columns.
type ListingKind int

const (
	// ForumListing: td.tc2 is the reply count, td.tc3 the view count.
	ForumListing ListingKind = iota
	// SearchListing: td.tc3 is the reply count, views are not shown.
	SearchListing
)

// ParseTopics extracts the topic rows of a forum or search page.
//
// Selectors per row `div#vf div.inbox table tr[class^=row]`: topic anchor
// `td.tcl > div.tclcon a`, page links `td.tcl span.pagestext a:last-child`,
// sticky/closed from the row's `isticky`/`iclosed` classes, last message
// `td.tcr > a`, unread pointer `td.tcl span.newtext a`.
func ParseTopics(doc *goquery.Document, base *url.URL, kind ListingKind) []model.ForumTopicDesc {
	repliesSel, viewsSel := "td.tc2", "td.tc3"
	if kind == SearchListing {
		repliesSel, viewsSel = "td.tc3", ""
	}

	var topics []model.ForumTopicDesc
	doc.Find("div#vf div.inbox table tr[class^=row]").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("td.tcl > div.tclcon a").First()
		topicURL := Resolve(base, anchor.AttrOr("href", ""))
		if topicURL == nil {
			return
		}

		classes := row.AttrOr("class", "")
		lastMessage := row.Find("td.tcr > a").First()

		pageCount := 1
		if n := TrySanitizeInt(row.Find("td.tcl span.pagestext a:last-child").Text()); n != nil {
			pageCount = *n
		}

		var viewCount *int
		if viewsSel != "" {
			viewCount = TrySanitizeInt(row.Find(viewsSel).Text())
		}

		topics = append(topics, model.ForumTopicDesc{
			Name:            anchor.Text(),
			Link:            topicURL,
			Sticky:          strings.Contains(classes, "isticky"),
			Closed:          strings.Contains(classes, "iclosed"),
			ReplyCount:      TrySanitizeInt(row.Find(repliesSel).Text()),
			ViewCount:       viewCount,
			PageCount:       pageCount,
			LastMessageLink: Resolve(base, lastMessage.AttrOr("href", "")),
			LastMessageDate: lastMessage.Text(),
			NewMessageLink:  Resolve(base, row.Find("td.tcl span.newtext a").AttrOr("href", "")),
		})
	})
	return topics
}

// ParseTopicPage extracts a fully loaded topic from its own page, messages
// included. The caller supplies the referer link separately since only the
// transport knows which URL actually served the page.
//
// Selectors: canonical link and `head title` for identity, `div#brdmain
// div.postlinksb p.postlink a[href^=post.php]` for writability, the toggle
// anchors `div#brdmain div.postlinksb p.subscribelink a[href*=favorite]`
// and `...a[href*=subscribe]` for favorite/subscription state.
func ParseTopicPage(doc *goquery.Document, base *url.URL) (*model.ForumTopic, error) {
	id, link, err := canonicalID(doc, base, "topic")
	if err != nil {
		return nil, err
	}

	currentPage, pageCount := ParsePagination(doc)

	messages, err := ParseMessages(doc, base)
	if err != nil {
		return nil, err
	}

	favorite := doc.Find("div#brdmain div.postlinksb p.subscribelink a[href*=favorite]").First()
	subscribe := doc.Find("div#brdmain div.postlinksb p.subscribelink a[href*=subscribe]").First()
	favoriteHref := favorite.AttrOr("href", "")
	subscribeHref := subscribe.AttrOr("href", "")

	return &model.ForumTopic{
		ID:               id,
		Name:             doc.Find("head title").Text(),
		Link:             link,
		Writable:         doc.Find("div#brdmain div.postlinksb p.postlink a[href^='post.php']").Length() > 0,
		IsFavorite:       strings.Contains(favoriteHref, "unfavorite"),
		FavoriteLink:     stripAction(Resolve(base, favoriteHref)),
		IsSubscribed:     strings.Contains(subscribeHref, "unsubscribe"),
		SubscriptionLink: stripAction(Resolve(base, subscribeHref)),
		PageCount:        pageCount,
		CurrentPage:      currentPage,
		Messages:         messages,
	}, nil
}
