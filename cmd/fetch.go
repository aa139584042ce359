package cmd

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"social/config"
	"social/dribbble"
	"social/feed"
	"social/github"
	"social/models"
	"social/twitter"
)

type provider struct {
	name  string
	fetch func(ctx context.Context) ([]models.Activity, error)
}

// fetchCmd represents the fetch command
func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch activity from all providers and write the feed",
		Description: `Fetches recent activity from each configured provider,
converts every item to markdown content with a normalized timestamp,
and writes the most recent items to activities.json in the output
directory.

A provider whose credential is missing or whose API call fails simply
contributes nothing to this run; the command still exits 0.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/social.toml",
				Usage:   "Path to provider configuration file",
				EnvVars: []string{"SOCIAL_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the feed and cached responses are written to",
				EnvVars: []string{"SOCIAL_OUTPUT_PATH"},
			},
			&cli.StringFlag{
				Name:    "twitter-token",
				Usage:   "Twitter API bearer token",
				EnvVars: []string{"SOCIAL_TWITTER_BEARER_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "github-token",
				Usage:   "GitHub API access token",
				EnvVars: []string{"SOCIAL_GITHUB_ACCESS_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "dribbble-token",
				Usage:   "Dribbble API key",
				EnvVars: []string{"SOCIAL_DRIBBBLE_API_KEY"},
			},
		},
		Action: func(ctx *cli.Context) error {
			output := ctx.String("output")
			if output == "" {
				// Without somewhere to write there is nothing to do
				return fmt.Errorf("output path not set")
			}

			cfg, err := config.LoadConfig(ctx.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			providers := configuredProviders(ctx, cfg, output)

			// The providers are independent, so fetch them in
			// parallel; ordering comes from the sort, not from
			// completion order.
			lists := make([][]models.Activity, len(providers))
			var wg sync.WaitGroup

			for i, p := range providers {
				wg.Add(1)
				go func(i int, p provider) {
					defer wg.Done()

					activities, err := p.fetch(ctx.Context)
					if err != nil {
						log.WithError(err).WithField("provider", p.name).Error("Provider contributes nothing this run")
						return
					}

					log.WithFields(log.Fields{
						"provider": p.name,
						"count":    len(activities),
					}).Info("Fetched provider activity")
					lists[i] = activities
				}(i, p)
			}
			wg.Wait()

			activities := feed.Assemble(cfg.FeedSize, lists...)
			if err := feed.Write(output, activities); err != nil {
				return err
			}

			log.WithField("count", len(activities)).Info("Wrote activity feed")
			return nil
		},
	}
}

// configuredProviders builds the fetchers that have a credential. A
// missing credential disables only that provider.
func configuredProviders(ctx *cli.Context, cfg *config.Config, output string) []provider {
	var providers []provider

	if token := ctx.String("twitter-token"); token != "" {
		client := twitter.NewClient(cfg.Twitter.APIRoot, token, cfg.Twitter.Handle, cfg.Twitter.Count)
		providers = append(providers, provider{name: "twitter", fetch: client.Fetch})
	} else {
		log.WithField("provider", "twitter").Error("Missing credential, skipping provider")
	}

	if token := ctx.String("github-token"); token != "" {
		client := github.NewClient(cfg.GitHub.APIRoot, token, cfg.GitHub.User, output)
		providers = append(providers, provider{name: "github", fetch: client.Fetch})
	} else {
		log.WithField("provider", "github").Error("Missing credential, skipping provider")
	}

	if token := ctx.String("dribbble-token"); token != "" {
		client := dribbble.NewClient(cfg.Dribbble.APIRoot, token, cfg.Dribbble.Handle, output)
		providers = append(providers, provider{name: "dribbble", fetch: client.Fetch})
	} else {
		log.WithField("provider", "dribbble").Error("Missing credential, skipping provider")
	}

	return providers
}
