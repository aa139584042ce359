package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"social/server"
)

// serveCmd represents the serve command
func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the generated feed artifacts over HTTP",
		Description: `Serves the output directory over HTTP so a website can load
activities.json and the cached raw provider responses directly. Run
the fetch command (e.g. from cron) to refresh the files; this server
only hands out whatever is on disk.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the fetch command wrote its artifacts to",
				EnvVars: []string{"SOCIAL_OUTPUT_PATH"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   3000,
				Usage:   "Port to listen on",
				EnvVars: []string{"SOCIAL_PORT"},
			},
		},
		Action: func(ctx *cli.Context) error {
			output := ctx.String("output")
			if output == "" {
				return fmt.Errorf("output path not set")
			}

			app := server.Server(output)

			// Graceful shutdown
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)

			go func() {
				<-c
				log.Info("Gracefully shutting down...")
				if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
					log.WithError(err).Error("Failed to shut down cleanly")
				}
			}()

			log.WithField("port", ctx.Int("port")).Info("Serving activity feed")
			return app.Listen(fmt.Sprintf(":%d", ctx.Int("port")))
		},
	}
}
