package topic

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/bit101/go-ansi"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/term"

	"github.com/avolkau/lurk/configuration"
	core "github.com/avolkau/lurk/forum"
	"github.com/avolkau/lurk/model"
)

func initViewCommand() *cobra.Command {
	viewCommand := &cobra.Command{
		Use:   "view <topic_URL>",
		Short: "Prints the messages of a topic page",
		Args:  cobra.ExactArgs(1),
		Run:   runViewCommand,
	}
	viewCommand.Flags().IntVar(&pageNum, "page", 1, "Page to show")
	return viewCommand
}

func runViewCommand(cmd *cobra.Command, args []string) {
	topicURL, err := url.Parse(args[0])
	if err != nil {
		log.Fatalf("Bad URL: %v", err)
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	contents, err := client.LoadTopicContents(context.Background(), core.PageRef{Link: topicURL, Page: pageNum})
	if err != nil {
		log.Fatal(err)
	}

	isTty := term.IsTerminal(int(os.Stdout.Fd()))
	if isTty {
		paginateMessages(contents)
	} else {
		printMessages(os.Stdout, contents)
	}
}

func paginateMessages(topic *model.ForumTopic) {
	cmd := exec.Command("/usr/bin/less", "-FRX")
	cmd.Stdout = os.Stdout

	if stdin, err := cmd.StdinPipe(); err == nil {
		go func() {
			defer stdin.Close()
			printMessages(stdin, topic)
		}()
	} else {
		log.Fatal(err)
	}

	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}

func printMessages(w io.Writer, topic *model.ForumTopic) {
	ansi.Fprintf(w, ansi.Green, "%s\n", topic.Name)
	ansi.Fprintf(w, ansi.Blue, "page %d of %d\n", topic.CurrentPage, topic.PageCount)
	for _, msg := range topic.Messages {
		ansi.Fprintf(w, ansi.Red, "#%d %s ", msg.Index, msg.Author)
		ansi.Fprintf(w, ansi.Yellow, "%s\n", msg.CreatedDate)
		fmt.Fprintf(w, "%s\n", plainText(msg.Content))
		ansi.Fprintln(w, ansi.Blue, "--------")
	}
}

var wsLinePat = regexp.MustCompile("\n[ \t]+\n")
var nlPat = regexp.MustCompile("\n\n+")

// plainText flattens message HTML into terminal text, skipping quoted
// blocks to keep replies readable.
func plainText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var text string
	var collectText func(*html.Node)
	collectText = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "blockquote" {
			return
		}
		if n.Type == html.TextNode {
			text += n.Data
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(c)
		}
	}
	collectText(doc)

	text = strings.ReplaceAll(text, " ", " ")
	text = wsLinePat.ReplaceAllString(text, "\n")
	text = nlPat.ReplaceAllString(text, "\n")
	return strings.Trim(text, "\n")
}
