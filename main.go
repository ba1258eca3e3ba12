package main

import (
	"log"

	"github.com/avolkau/lurk/cli"
)

func main() {
	lurkCmd := cli.NewCommand()
	if err := lurkCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
