package topic

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	pageNum int
)

func NewCommand() *cobra.Command {
	topicCommand := &cobra.Command{
		Use:   "topic",
		Short: "Commands for reading and writing topics",
		Example: "  # Read a topic\n" +
			"  " + os.Args[0] + " topic view https://site.com/viewtopic.php?id=12345",
	}

	topicCommand.AddCommand(initViewCommand())
	topicCommand.AddCommand(initOpenCommand())
	topicCommand.AddCommand(initReplyCommand())
	topicCommand.AddCommand(initQuoteCommand())
	topicCommand.AddCommand(initFavoriteCommand())
	topicCommand.AddCommand(initSubscribeCommand())
	topicCommand.AddCommand(initUploadCommand())
	topicCommand.AddCommand(initWordcloudCommand())

	return topicCommand
}
