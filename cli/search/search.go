package search

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
	core "github.com/avolkau/lurk/forum"
	"github.com/avolkau/lurk/model"
)

var (
	pageNum int
)

func NewCommand() *cobra.Command {
	searchCommand := &cobra.Command{
		Use:   "search",
		Short: "Commands for the forum search pages",
		Example: "  # Show recently active topics\n" +
			"  " + os.Args[0] + " search recent",
	}

	searchCommand.PersistentFlags().IntVar(&pageNum, "page", 1, "Page to show")

	searchCommand.AddCommand(initShortcutCommand("favorites", "Topics in the profile favorites",
		func(e core.Endpoints) *url.URL { return e.FavoriteTopics }))
	searchCommand.AddCommand(initShortcutCommand("replies", "Topics the account posted in",
		func(e core.Endpoints) *url.URL { return e.RepliedTopics }))
	searchCommand.AddCommand(initShortcutCommand("new", "Topics with unread messages",
		func(e core.Endpoints) *url.URL { return e.NewTopics }))
	searchCommand.AddCommand(initShortcutCommand("recent", "Recently active topics",
		func(e core.Endpoints) *url.URL { return e.RecentTopics }))
	searchCommand.AddCommand(initMessagesCommand())

	return searchCommand
}

func initShortcutCommand(name, short string, pick func(core.Endpoints) *url.URL) *cobra.Command {
	shortcutCommand := &cobra.Command{
		Use:   name,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			runShortcutCommand(pick)
		},
	}
	return shortcutCommand
}

func runShortcutCommand(pick func(core.Endpoints) *url.URL) {
	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := client.EnsureFresh(ctx); err != nil {
		log.Fatal(err)
	}

	results, err := client.LoadSearchTopicResults(ctx, pick(client.Endpoints()), pageNum)
	if err != nil {
		log.Fatal(err)
	}
	printTopicResults(results)
}

func printTopicResults(results *model.SearchResults[model.ForumTopicDesc]) {
	fmt.Printf("%s (page %d of %d)\n", results.Name, results.CurrentPage, results.PageCount)
	for _, topic := range results.Results {
		replies := "-"
		if topic.ReplyCount != nil {
			replies = fmt.Sprint(*topic.ReplyCount)
		}
		fmt.Printf("  %s (%s replies, %s)\n    %s\n", topic.Name, replies, topic.LastMessageDate, topic.Link)
	}
}
