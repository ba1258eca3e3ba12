package forum

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

var subject string

func initCreateCommand() *cobra.Command {
	createCommand := &cobra.Command{
		Use:   "create <forum_id>",
		Short: "Creates a new topic, message text is read from stdin",
		Args:  cobra.ExactArgs(1),
		Run:   runCreateCommand,
	}
	createCommand.Flags().StringVar(&subject, "subject", "", "Subject of the new topic")
	createCommand.MarkFlagRequired("subject")
	return createCommand
}

func runCreateCommand(cmd *cobra.Command, args []string) {
	forumID := 0
	if _, err := fmt.Sscanf(args[0], "%d", &forumID); err != nil {
		log.Fatalf("Bad forum id %q", args[0])
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

	link, err := client.PostTopic(ctx, forumID, subject, string(message))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Topic created: %s\n", link)
}
