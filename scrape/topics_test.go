package scrape

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTopicPage(t *testing.T) {
	doc, base := loadFixture(t, "topic_page.html")

	topic, err := ParseTopicPage(doc, base)
	require.Equal(t, nil, err)

	require.Equal(t, 33, topic.ID)
	require.Equal(t, "vim vs emacs, round 9000", topic.Name)
	require.Equal(t, "https://board.example.com/viewtopic.php?id=33", topic.Link.String())
	require.Equal(t, true, topic.Writable)
	require.Equal(t, 1, topic.CurrentPage)
	require.Equal(t, 3, topic.PageCount)

	// The page offers "remove from favorites", so the topic is already a
	// favorite; both toggle links come back without their action parameter.
	require.Equal(t, true, topic.IsFavorite)
	require.NotNil(t, topic.FavoriteLink)
	require.Equal(t, "", topic.FavoriteLink.Query().Get("action"))
	require.Equal(t, "33", topic.FavoriteLink.Query().Get("tid"))

	require.Equal(t, false, topic.IsSubscribed)
	require.NotNil(t, topic.SubscriptionLink)
	require.Equal(t, "", topic.SubscriptionLink.Query().Get("action"))

	require.Equal(t, 2, len(topic.Messages))

	first := topic.Messages[0]
	require.Equal(t, 101, first.ID)
	require.Equal(t, 1, first.Index)
	require.Equal(t, "https://board.example.com/viewtopic.php?pid=101#p101", first.Link.String())
	require.Equal(t, "holy_troll", first.Author)
	require.Equal(t, "https://board.example.com/img/avatars/7.png", first.AuthorAvatarURL.String())
	require.Equal(t, "2026-08-30 10:15", first.CreatedDate)
	require.Contains(t, first.Content, "Let the flames begin. Again.")

	second := topic.Messages[1]
	require.Equal(t, 102, second.ID)
	require.Equal(t, 2, second.Index)
	require.Equal(t, "ed_is_the_standard", second.Author)
	require.Nil(t, second.AuthorAvatarURL)
}

func TestParseTopicPageRewritesSpoilers(t *testing.T) {
	doc, base := loadFixture(t, "topic_page.html")

	topic, err := ParseTopicPage(doc, base)
	require.Equal(t, nil, err)

	content := topic.Messages[1].Content
	require.Contains(t, content, "<details>")
	require.Contains(t, content, "<summary>▼ startup times</summary>")
	require.Contains(t, content, "ed wins, obviously. <strong>0ms</strong> and <em>no config</em>.")
	require.Equal(t, false, strings.Contains(content, "onclick"))
}

func TestParseMessageWithoutPermalinkFails(t *testing.T) {
	doc := docFromString(t, `<html><head>
		<link rel="canonical" href="viewtopic.php?id=5">
		<title>broken</title></head>
		<body><div id="brdmain">
		<div class="blockpost">
		<h2><span><span class="conr">#1</span></span></h2>
		<div class="postright"><div class="postmsg"><p>hi</p></div></div>
		</div>
		</div></body></html>`)
	base, err := url.Parse("https://board.example.com/")
	require.Equal(t, nil, err)

	_, err = ParseTopicPage(doc, base)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "message", parseErr.Page)
}
