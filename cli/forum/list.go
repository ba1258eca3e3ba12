package forum

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

func initListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the forums on the main page",
		Run:   runListCommand,
	}
	return listCommand
}

func runListCommand(cmd *cobra.Command, args []string) {
	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	forums, err := client.LoadForumList(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	lastCategory := ""
	for _, forum := range forums {
		if forum.Category != lastCategory {
			fmt.Printf("== %s ==\n", forum.Category)
			lastCategory = forum.Category
		}
		counters := ""
		if forum.TopicCount != nil && forum.MessageCount != nil {
			counters = fmt.Sprintf(" (%d topics, %d messages)", *forum.TopicCount, *forum.MessageCount)
		}
		fmt.Printf("  %s%s\n    %s\n", forum.Name, counters, forum.Link)
	}
}
