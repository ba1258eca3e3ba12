package forum

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
	core "github.com/avolkau/lurk/forum"
)

func initViewCommand() *cobra.Command {
	viewCommand := &cobra.Command{
		Use:   "view <forum_URL>",
		Short: "Shows the topics of a forum page",
		Args:  cobra.ExactArgs(1),
		Run:   runViewCommand,
	}
	viewCommand.Flags().IntVar(&pageNum, "page", 1, "Page to show")
	return viewCommand
}

func runViewCommand(cmd *cobra.Command, args []string) {
	forumURL, err := url.Parse(args[0])
	if err != nil {
		log.Fatalf("Bad URL: %v", err)
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	contents, err := client.LoadForumContents(context.Background(), core.PageRef{Link: forumURL, Page: pageNum})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s (page %d of %d)\n", contents.Name, contents.CurrentPage, contents.PageCount)
	for _, sub := range contents.Subforums {
		fmt.Printf("  [subforum] %s: %s\n", sub.Name, sub.Link)
	}
	for _, topic := range contents.Topics {
		marker := " "
		if topic.Sticky {
			marker = "*"
		}
		if topic.Closed {
			marker = "x"
		}
		replies := "-"
		if topic.ReplyCount != nil {
			replies = fmt.Sprint(*topic.ReplyCount)
		}
		fmt.Printf("%s %s (%s replies, %s)\n    %s\n", marker, topic.Name, replies, topic.LastMessageDate, topic.Link)
	}
}
