package topic

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

func initQuoteCommand() *cobra.Command {
	quoteCommand := &cobra.Command{
		Use:   "quote <topic_id> <message_id>",
		Short: "Prints the quoted text of a message, ready for a reply",
		Args:  cobra.ExactArgs(2),
		Run:   runQuoteCommand,
	}
	return quoteCommand
}

func runQuoteCommand(cmd *cobra.Command, args []string) {
	topicID, err := strconv.Atoi(args[0])
	if err != nil {
		log.Fatalf("Bad topic id %q", args[0])
	}
	messageID, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("Bad message id %q", args[1])
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	quote, err := client.LoadQuote(context.Background(), topicID, messageID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(quote)
}
