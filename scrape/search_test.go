package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSearchTopics(t *testing.T) {
	doc, base := loadFixture(t, "search_page.html")

	results, err := ParseSearchTopics(doc, base)
	require.Equal(t, nil, err)

	require.Equal(t, "Favorite topics", results.Name)
	require.Equal(t, 1, results.CurrentPage)
	require.Equal(t, 2, results.PageCount)
	require.Equal(t, 2, len(results.Results))

	vim := results.Results[0]
	require.Equal(t, "vim vs emacs, round 9000", vim.Name)
	require.Equal(t, "https://board.example.com/viewtopic.php?id=33", vim.Link.String())
	// search listings put the reply count in the third column and show no
	// view counter at all
	require.Equal(t, 41, *vim.ReplyCount)
	require.Nil(t, vim.ViewCount)
	require.Equal(t, 3, vim.PageCount)

	systemd := results.Results[1]
	require.Equal(t, "systemd appreciation thread", systemd.Name)
	require.Nil(t, systemd.ReplyCount)
	require.Equal(t, 1, systemd.PageCount)
}

func TestParseSearchTopicsWithoutCaption(t *testing.T) {
	doc, base := loadFixture(t, "main_page.html")

	_, err := ParseSearchTopics(doc, base)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "search", parseErr.Page)
}

func TestParseSearchMessages(t *testing.T) {
	doc, base := loadFixture(t, "search_messages.html")

	results, err := ParseSearchMessages(doc, base)
	require.Equal(t, nil, err)

	require.Equal(t, "Search results: emacs", results.Name)
	require.Equal(t, 2, results.CurrentPage)
	require.Equal(t, 5, results.PageCount)
	require.Equal(t, 2, len(results.Results))

	require.Equal(t, 102, results.Results[0].ID)
	require.Equal(t, 2, results.Results[0].Index)
	require.Equal(t, "ed_is_the_standard", results.Results[0].Author)
	require.Contains(t, results.Results[0].Content, "emacs is an operating system.")

	require.Equal(t, 340, results.Results[1].ID)
	require.Equal(t, 7, results.Results[1].Index)
	require.Equal(t, "holy_troll", results.Results[1].Author)
}

func TestParseQuote(t *testing.T) {
	doc, _ := loadFixture(t, "quote_page.html")

	quote, err := ParseQuote(doc)
	require.Equal(t, nil, err)
	require.Contains(t, quote, "[quote=ed_is_the_standard]emacs is an operating system.[/quote]")
}

func TestParseQuoteMissingComposer(t *testing.T) {
	doc, _ := loadFixture(t, "main_page.html")

	_, err := ParseQuote(doc)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "quote composer", parseErr.Page)
}

func TestParseResultLink(t *testing.T) {
	doc, base := loadFixture(t, "confirmation_page.html")

	link, err := ParseResultLink(doc, base)
	require.Equal(t, nil, err)
	require.Equal(t, "https://board.example.com/viewtopic.php?pid=1042#p1042", link.String())
}

func TestParseResultLinkMissing(t *testing.T) {
	doc := docFromString(t, `<html><body><div id="brdmain"><div class="box"><p>nope</p></div></div></body></html>`)

	_, err := ParseResultLink(doc, nil)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "post confirmation", parseErr.Page)
}
