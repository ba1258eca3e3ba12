package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avolkau/lurk/cli/account"
	"github.com/avolkau/lurk/cli/forum"
	"github.com/avolkau/lurk/cli/search"
	"github.com/avolkau/lurk/cli/topic"
)

var (
	forumURL    string
	sessionPath string
	userAgent   string
)

func NewCommand() *cobra.Command {
	lurkCli := &cobra.Command{
		Use:     "lurk",
		Short:   "Lurk CLI",
		Long:    "Lurk, a command line client for FluxBB-style forums",
		Example: fmt.Sprintf("  %s <command> [flags...]", os.Args[0]),
	}

	lurkCli.PersistentFlags().StringVar(&forumURL, "url", "https://holywarsoo.net", "Forum base URL")
	lurkCli.PersistentFlags().StringVar(&sessionPath, "session", "lurk-session.db", "Session store filename")
	lurkCli.PersistentFlags().StringVar(&userAgent, "user-agent", "", "Override the client identity header")
	viper.BindPFlag("url", lurkCli.PersistentFlags().Lookup("url"))
	viper.BindPFlag("session", lurkCli.PersistentFlags().Lookup("session"))
	viper.BindPFlag("user-agent", lurkCli.PersistentFlags().Lookup("user-agent"))

	lurkCli.AddCommand(account.NewCommand())
	lurkCli.AddCommand(forum.NewCommand())
	lurkCli.AddCommand(search.NewCommand())
	lurkCli.AddCommand(topic.NewCommand())

	return lurkCli
}
