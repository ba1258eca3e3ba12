package account

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	accountCommand := &cobra.Command{
		Use:   "account",
		Short: "Commands for managing the forum session",
		Example: "  # Log in and persist the session\n" +
			"  " + os.Args[0] + " account login <username>",
	}

	accountCommand.AddCommand(initLoginCommand())
	accountCommand.AddCommand(initLogoutCommand())
	accountCommand.AddCommand(initStatusCommand())

	return accountCommand
}
