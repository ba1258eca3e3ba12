package topic

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

func initReplyCommand() *cobra.Command {
	replyCommand := &cobra.Command{
		Use:   "reply <topic_id>",
		Short: "Posts a reply to a topic, message text is read from stdin",
		Args:  cobra.ExactArgs(1),
		Run:   runReplyCommand,
	}
	return replyCommand
}

func runReplyCommand(cmd *cobra.Command, args []string) {
	topicID, err := strconv.Atoi(args[0])
	if err != nil {
		log.Fatalf("Bad topic id %q", args[0])
	}

	message, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := client.EnsureFresh(ctx); err != nil {
		log.Fatal(err)
	}

	link, err := client.PostMessage(ctx, topicID, string(message))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Message posted: %s\n", link)
}
