package search

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

func initMessagesCommand() *cobra.Command {
	messagesCommand := &cobra.Command{
		Use:   "messages <keyword>",
		Short: "Searches messages by keyword",
		Args:  cobra.ExactArgs(1),
		Run:   runMessagesCommand,
	}
	return messagesCommand
}

func runMessagesCommand(cmd *cobra.Command, args []string) {
	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	results, err := client.LoadSearchMessagesResults(context.Background(), nil, args[0], pageNum)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s (page %d of %d)\n", results.Name, results.CurrentPage, results.PageCount)
	for _, msg := range results.Results {
		fmt.Printf("  #%d %s (%s)\n    %s\n", msg.Index, msg.Author, msg.CreatedDate, msg.Link)
	}
}
