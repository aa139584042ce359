package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "social",
		Usage: "Aggregate public social activity into one feed",
		Description: `Pulls a person's public activity from Twitter, GitHub and
		Dribbble, rewrites mentions, hashtags and URLs into markdown links,
		and writes the twelve most recent items to an activities.json file
		for a website to consume.

		Flags can generally be set via environment variables, e.g.:

		--output => SOCIAL_OUTPUT_PATH=/var/www/data
		--port => SOCIAL_PORT=3000
		`,
		Commands: []*cli.Command{
			fetchCmd(),
			serveCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
