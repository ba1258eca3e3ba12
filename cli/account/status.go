package account

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
)

func initStatusCommand() *cobra.Command {
	statusCommand := &cobra.Command{
		Use:   "status",
		Short: "Shows login state and session expiry",
		Run:   runStatusCommand,
	}
	return statusCommand
}

func runStatusCommand(cmd *cobra.Command, args []string) {
	// Asking for status must not create an empty session store.
	if ok, err := configuration.SessionStoreExists(); err != nil {
		log.Fatal(err)
	} else if !ok {
		fmt.Println("Not logged in")
		return
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if !client.IsLoggedIn() {
		fmt.Println("Not logged in")
		return
	}

	username, _ := client.Username()
	fmt.Printf("Logged in as %s, %d days until session expires\n", username, client.DaysToAuthExpiration())
}
