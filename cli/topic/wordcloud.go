package topic

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/psykhi/wordclouds"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/avolkau/lurk/configuration"
	core "github.com/avolkau/lurk/forum"
)

var (
	confPath string
	output   string
)

var DefaultColors = []color.RGBA{
	{0x1b, 0x1b, 0x1b, 0xff},
	{0x48, 0x48, 0x4B, 0xff},
	{0x59, 0x3a, 0xee, 0xff},
	{0x65, 0xCD, 0xFA, 0xff},
	{0x70, 0xD6, 0xBF, 0xff},
}

type Conf struct {
	FontMaxSize     int    `yaml:"font_max_size"`
	FontMinSize     int    `yaml:"font_min_size"`
	RandomPlacement bool   `yaml:"random_placement"`
	FontFile        string `yaml:"font_file"`
	Colors          []color.RGBA
	BackgroundColor color.RGBA `yaml:"background_color"`
	Width           int
	Height          int
}

var DefaultConf = Conf{
	FontMaxSize:     700,
	FontMinSize:     10,
	RandomPlacement: false,
	FontFile:        "./fonts/roboto/Roboto-Regular.ttf",
	Colors:          DefaultColors,
	BackgroundColor: color.RGBA{255, 255, 255, 255},
	Width:           4096,
	Height:          4096,
}

func initWordcloudCommand() *cobra.Command {
	wordcloudCommand := &cobra.Command{
		Use:   "wordcloud <topic_URL>",
		Short: "Create a word cloud from the messages of a topic",
		Args:  cobra.ExactArgs(1),
		Run:   runWordcloudCommand,
	}

	wordcloudCommand.Flags().StringVar(&confPath, "config", "config.yaml", "Path to word cloud config file")
	wordcloudCommand.Flags().StringVar(&output, "output", "output.png", "Path to output image")

	return wordcloudCommand
}

func runWordcloudCommand(cmd *cobra.Command, args []string) {
	topicURL, err := url.Parse(args[0])
	if err != nil {
		log.Fatalf("Bad URL: %v", err)
	}

	client, store, err := configuration.OpenClient()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	maxWords := 200
	wordRe := regexp.MustCompile("[A-Za-z]+")
	inputWords := map[string]int{}

	ctx := context.Background()
	for page := 1; ; page++ {
		contents, err := client.LoadTopicContents(ctx, core.PageRef{Link: topicURL, Page: page})
		if err != nil {
			log.Fatal(err)
		}
		for _, msg := range contents.Messages {
			relevant := stopwords.CleanString(plainText(msg.Content), "en", true)
			for _, w := range wordRe.FindAllString(relevant, -1) {
				lw := strings.ToLower(w)
				if len(lw) >= 3 {
					inputWords[lw] += 1
				}
			}
		}
		if page >= contents.PageCount {
			break
		}
	}

	wordList := make([]string, len(inputWords))
	i := 0
	for w := range inputWords {
		wordList[i] = w
		i++
	}
	sort.Slice(wordList, func(i, j int) bool {
		return inputWords[wordList[i]] < inputWords[wordList[j]]
	})
	if len(wordList) > maxWords {
		wordList = wordList[len(wordList)-maxWords:]
	}

	displayWords := map[string]int{}
	for _, w := range wordList {
		displayWords[w] = inputWords[w]
	}

	conf := DefaultConf
	content, err := os.ReadFile(confPath)
	if err == nil {
		if err = yaml.Unmarshal(content, &conf); err != nil {
			fmt.Printf("Failed to decode config, using defaults instead: %s\n", err)
		}
	} else {
		fmt.Println("No config file. Using defaults")
	}

	colors := make([]color.Color, 0)
	for _, c := range conf.Colors {
		colors = append(colors, c)
	}

	w := wordclouds.NewWordcloud(displayWords,
		wordclouds.FontFile(conf.FontFile),
		wordclouds.FontMaxSize(conf.FontMaxSize),
		wordclouds.FontMinSize(conf.FontMinSize),
		wordclouds.Colors(colors),
		wordclouds.Height(conf.Height),
		wordclouds.Width(conf.Width),
		wordclouds.RandomPlacement(conf.RandomPlacement),
		wordclouds.BackgroundColor(conf.BackgroundColor),
	)

	img := w.Draw()
	outputFile, err := os.Create(output)
	if err != nil {
		panic(err)
	}
	defer outputFile.Close()

	if err := png.Encode(outputFile, img); err != nil {
		log.Fatal(err)
	}
}
