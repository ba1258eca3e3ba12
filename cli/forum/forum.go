package forum

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	pageNum int
)

func NewCommand() *cobra.Command {
	forumCommand := &cobra.Command{
		Use:   "forum",
		Short: "Commands for browsing forums",
		Example: "  # List forums on the main page\n" +
			"  " + os.Args[0] + " forum list",
	}

	forumCommand.AddCommand(initListCommand())
	forumCommand.AddCommand(initViewCommand())
	forumCommand.AddCommand(initCreateCommand())

	return forumCommand
}
