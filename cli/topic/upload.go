package topic

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkau/lurk/configuration"
	"github.com/avolkau/lurk/utils"
)

func initUploadCommand() *cobra.Command {
	uploadCommand := &cobra.Command{
		Use:   "upload <image_file>",
		Short: "Uploads an image and prints a link to paste into a message",
		Args:  cobra.ExactArgs(1),
		Run:   runUploadCommand,
	}
	return uploadCommand
}

func runUploadCommand(cmd *cobra.Command, args []string) {
	if ok, err := utils.PathExists(args[0]); err != nil {
		log.Fatal(err)
	} else if !ok {
		log.Fatalf("No image at %q", args[0])
	}

	image, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	link, err := client.UploadImage(context.Background(), image)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(link)
}
