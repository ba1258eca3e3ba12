package account

import (
	"context"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avolkau/lurk/configuration"
)

func initLoginCommand() *cobra.Command {
	loginCommand := &cobra.Command{
		Use:   "login <username>",
		Short: "Logs into the forum and persists the session",
		Args:  cobra.ExactArgs(1),
		Run:   runLoginCommand,
	}
	return loginCommand
}

func runLoginCommand(cmd *cobra.Command, args []string) {
	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Login(context.Background(), args[0], string(password)); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as %s, session valid for %d days\n", args[0], client.DaysToAuthExpiration())
}
