package topic

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
	core "github.com/avolkau/lurk/forum"
)

var remove bool

func initFavoriteCommand() *cobra.Command {
	favoriteCommand := &cobra.Command{
		Use:   "favorite <topic_id>",
		Short: "Adds a topic to the profile favorites",
		Args:  cobra.ExactArgs(1),
		Run:   runFavoriteCommand,
	}
	favoriteCommand.Flags().BoolVar(&remove, "remove", false, "Remove instead of add")
	return favoriteCommand
}

func runFavoriteCommand(cmd *cobra.Command, args []string) {
	action := core.ActionFavorite
	if remove {
		action = core.ActionUnfavorite
	}
	runToggle(args[0], action)
}

func initSubscribeCommand() *cobra.Command {
	subscribeCommand := &cobra.Command{
		Use:   "subscribe <topic_id>",
		Short: "Subscribes to topic updates",
		Args:  cobra.ExactArgs(1),
		Run:   runSubscribeCommand,
	}
	subscribeCommand.Flags().BoolVar(&remove, "remove", false, "Remove instead of add")
	return subscribeCommand
}

func runSubscribeCommand(cmd *cobra.Command, args []string) {
	action := core.ActionSubscribe
	if remove {
		action = core.ActionUnsubscribe
	}
	runToggle(args[0], action)
}

func runToggle(topicArg, action string) {
	topicID, err := strconv.Atoi(topicArg)
	if err != nil {
		log.Fatalf("Bad topic id %q", topicArg)
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

	if err := client.ManageFavorites(ctx, topicID, action); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Done: %s topic %d\n", action, topicID)
}
