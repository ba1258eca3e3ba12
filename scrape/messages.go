package scrape

import (
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/avolkau/lurk/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseMessages extracts every message box of a topic or message-search
// page. Messages are parsed in parallel, each box is detached from the
// document first so the goroutines never touch the shared DOM, and the
// output keeps document order.
//
// Selectors per box `div#brdmain div.blockpost`: permalink and date
// `h2 > span > a` (the `pid` parameter of the permalink is the message id),
// printed ordinal `h2 > span > span.conr`, author `div.postleft > dl > dt >
// strong:last-child`, avatar `div.postleft dd.postavatar > img`, body
// `div.postright > div.postmsg`.
func ParseMessages(doc *goquery.Document, base *url.URL) ([]model.ForumMessage, error) {
	boxes := doc.Find("div#brdmain div.blockpost")

	messages := make([]model.ForumMessage, boxes.Length())
	errs := make([]error, boxes.Length())

	var wg sync.WaitGroup
	boxes.Each(func(i int, box *goquery.Selection) {
		box.Remove()
		wg.Add(1)
		go func() {
			defer wg.Done()
			messages[i], errs[i] = parseMessage(box, base)
		}()
	})
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return messages, nil
}

func parseMessage(box *goquery.Selection, base *url.URL) (model.ForumMessage, error) {
	var msg model.ForumMessage

	permalink := box.Find("h2 > span > a").First()
	msgURL := Resolve(base, permalink.AttrOr("href", ""))
	id, ok := queryID(msgURL, "pid")
	if !ok {
		return msg, &ParseError{Page: "message", Missing: "pid parameter of permalink"}
	}

	index := TrySanitizeInt(strings.ReplaceAll(box.Find("h2 > span > span.conr").Text(), "#", ""))
	if index == nil {
		return msg, &ParseError{Page: "message", Missing: "h2 > span > span.conr ordinal"}
	}

	body := box.Find("div.postright > div.postmsg").First()
	if body.Length() == 0 {
		return msg, &ParseError{Page: "message", Missing: "div.postright > div.postmsg"}
	}
	RewriteSpoilers(body)
	content, err := goquery.OuterHtml(body)
	if err != nil {
		return msg, err
	}

	msg = model.ForumMessage{
		ID:              id,
		Index:           *index,
		Link:            msgURL,
		Author:          box.Find("div.postleft > dl > dt > strong:last-child").Text(),
		AuthorAvatarURL: Resolve(base, box.Find("div.postleft dd.postavatar > img").AttrOr("src", "")),
		CreatedDate:     permalink.Text(),
		Content:         content,
	}
	return msg, nil
}

// RewriteSpoilers replaces the site's JS spoiler idiom, a clickable
// `div[onclick*=▼]` whose parent div hides the spoiler body, with plain
// `<details>`/`<summary>` disclosure markup. The rewrite is structural: the
// parent becomes `details`, the clickable div becomes `summary` keeping
// only its own caption text, and the hidden content keeps all its nested
// markup untouched.
func RewriteSpoilers(body *goquery.Selection) {
	body.Find("div[onclick*='▼']").Each(func(_ int, clicker *goquery.Selection) {
		parent := clicker.Parent()
		if parent.Length() == 0 {
			return
		}
		renameNode(parent, "details")
		caption := ownText(clicker)
		renameNode(clicker, "summary")
		clicker.SetHtml("")
		clicker.AppendNodes(&html.Node{Type: html.TextNode, Data: caption})
	})
}

func renameNode(s *goquery.Selection, tag string) {
	for _, node := range s.Nodes {
		node.Data = tag
		node.DataAtom = atom.Lookup([]byte(tag))
		node.Attr = nil
	}
}
