package forum

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/avolkau/lurk/model"
	"github.com/avolkau/lurk/scrape"
)

// LoadForumList fetches the landing page and returns its forum listing,
// in document order, each entry carrying the category header it appeared
// under.
func (c *Client) LoadForumList(ctx context.Context) ([]model.ForumDesc, error) {
	base := c.BaseURL()
	doc, _, err := c.getDocument(ctx, "load main page", base)
	if err != nil {
		return nil, err
	}
	return scrape.ParseForumList(doc, base)
}

// LoadForumContents fetches one page of a forum: browsing info, pagination,
// subforums and topic rows.
func (c *Client) LoadForumContents(ctx context.Context, ref PageRef) (*model.Forum, error) {
	target := ref.target()
	if target == nil {
		return nil, fmt.Errorf("load forum: no link given")
	}
	doc, _, err := c.getDocument(ctx, "load forum contents", target)
	if err != nil {
		return nil, err
	}
	return scrape.ParseForumPage(doc, c.BaseURL())
}

// LoadTopicContents fetches one page of a topic with all its messages. The
// returned topic remembers the URL that actually served the page as its
// referer link, which matters when ref.Custom pointed into the middle of
// the topic.
func (c *Client) LoadTopicContents(ctx context.Context, ref PageRef) (*model.ForumTopic, error) {
	target := ref.target()
	if target == nil {
		return nil, fmt.Errorf("load topic: no link given")
	}
	doc, res, err := c.getDocument(ctx, "load topic contents", target)
	if err != nil {
		return nil, err
	}
	topic, err := scrape.ParseTopicPage(doc, c.BaseURL())
	if err != nil {
		return nil, err
	}
	topic.RefererLink = requestedURL(res)
	return topic, nil
}

// LoadSearchTopicResults fetches one page of a topic search: one of the
// shortcut endpoints (favorites, replies, new, recent) or any other
// search.php link shown as topics.
func (c *Client) LoadSearchTopicResults(ctx context.Context, searchLink *url.URL, page int) (*model.SearchResults[model.ForumTopicDesc], error) {
	if searchLink == nil {
		return nil, fmt.Errorf("load search results: no link given")
	}
	target := PageRef{Link: searchLink, Page: page}.target()
	doc, _, err := c.getDocument(ctx, "load search results", target)
	if err != nil {
		return nil, err
	}
	results, err := scrape.ParseSearchTopics(doc, c.BaseURL())
	if err != nil {
		return nil, err
	}
	results.Link = searchLink
	return results, nil
}

// LoadSearchMessagesResults fetches one page of a keyword search shown as
// messages. When searchLink is nil a canonical keyword search URL is built
// from the current origin.
func (c *Client) LoadSearchMessagesResults(ctx context.Context, searchLink *url.URL, keyword string, page int) (*model.SearchResults[model.ForumMessage], error) {
	if searchLink == nil {
		if keyword == "" {
			return nil, fmt.Errorf("load message search: no link and no keyword given")
		}
		searchLink = c.Resolve("search.php?action=search&show_as=posts&keywords=" + url.QueryEscape(keyword))
	}
	target := PageRef{Link: searchLink, Page: page}.target()
	doc, _, err := c.getDocument(ctx, "load message search results", target)
	if err != nil {
		return nil, err
	}
	results, err := scrape.ParseSearchMessages(doc, c.BaseURL())
	if err != nil {
		return nil, err
	}
	results.Link = searchLink
	return results, nil
}

// LoadQuote fetches the reply composer pre-filled with a quote of the given
// message and returns the raw quoted text. The topic id may be any topic
// the message could be quoted into, that is just how the composer URL is
// shaped.
func (c *Client) LoadQuote(ctx context.Context, topicID, messageID int) (string, error) {
	quoteURL := c.Resolve("post.php?tid=" + strconv.Itoa(topicID) + "&qid=" + strconv.Itoa(messageID))
	doc, _, err := c.getDocument(ctx, "load message quote", quoteURL)
	if err != nil {
		return "", err
	}
	return scrape.ParseQuote(doc)
}
