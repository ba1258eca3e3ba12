package account

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

func initLogoutCommand() *cobra.Command {
	logoutCommand := &cobra.Command{
		Use:   "logout",
		Short: "Clears the stored session and credentials",
		Run:   runLogoutCommand,
	}
	return logoutCommand
}

func runLogoutCommand(cmd *cobra.Command, args []string) {
	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	client.Logout()
	fmt.Println("Logged out")
}
