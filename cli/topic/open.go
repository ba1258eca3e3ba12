package topic

import (
	"log"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

func initOpenCommand() *cobra.Command {
	openCommand := &cobra.Command{
		Use:   "open <topic_URL>",
		Short: "Opens a topic in a browser.",
		Args:  cobra.ExactArgs(1),
		Run:   runOpenCommand,
	}
	return openCommand
}

func runOpenCommand(cmd *cobra.Command, args []string) {
	if err := browser.OpenURL(args[0]); err != nil {
		log.Fatal(err)
	}
}
