package dribbble

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"social/feed"
	"social/markdown"
	"social/models"
	"social/timeutil"
)

const webRoot = "https://dribbble.com"

type ImageSet struct {
	HiDPI  *string `json:"hidpi"`
	Normal string  `json:"normal"`
	Teaser string  `json:"teaser"`
}

type Shot struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      ImageSet `json:"images"`
	HTMLURL     string   `json:"html_url"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"published_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Content renders the shot announcement: a title link, an inline
// teaser image linking to the shot, and one browse link per tag. The
// description itself is not interpolated, so it needs no linking.
func Content(shot *Shot, handle string) string {
	title := fmt.Sprintf("View %s on Dribbble", shot.Title)

	tags := lo.Map(shot.Tags, func(tag string, _ int) string {
		return markdown.Link("#"+tag, fmt.Sprintf("%s/%s/tags/%s", webRoot, handle, tag),
			fmt.Sprintf("View shots tagged %s on Dribbble", tag))
	})

	return fmt.Sprintf("Unveiled a new Shot: %s [![%s](%s)](%s \"%s\")\n\n%s",
		markdown.Link(shot.Title, shot.HTMLURL, title),
		shot.Title, shot.Images.Teaser, shot.HTMLURL, markdown.EscapeLinkTitle(title),
		strings.Join(tags, " "))
}

// Transform converts shots into feed activities, dropping any shot
// whose published timestamp fails to parse.
func Transform(shots []Shot, handle string) []models.Activity {
	activities := make([]models.Activity, 0, len(shots))

	for i := range shots {
		shot := &shots[i]

		publishedAt, err := timeutil.Parse(shot.PublishedAt, timeutil.ISOLayout)
		if err != nil {
			log.WithError(err).WithField("id", shot.ID).Warn("Dropping shot with bad timestamp")
			continue
		}

		activities = append(activities, models.Activity{
			Type:    "dribbble",
			Content: Content(shot, handle),
			DateTime: models.DateTime{
				URL:    shot.HTMLURL,
				Action: "Shot",
				TS:     publishedAt,
			},
		})
	}

	return activities
}

type Client struct {
	http     *resty.Client
	handle   string
	cacheDir string
}

// NewClient builds a Dribbble API client. When cacheDir is non-empty
// the raw shots response is written there verbatim; the site's
// designs tab reads the same data.
func NewClient(apiRoot string, apiKey string, handle string, cacheDir string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiRoot).
			SetAuthToken(apiKey).
			SetTimeout(30 * time.Second),
		handle:   handle,
		cacheDir: cacheDir,
	}
}

func (c *Client) Fetch(ctx context.Context) ([]models.Activity, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/v2/user/shots")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shots: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch shots: unexpected status %s", resp.Status())
	}

	if c.cacheDir != "" {
		if err := feed.CacheRaw(c.cacheDir, "dribbble.json", resp.Body()); err != nil {
			return nil, fmt.Errorf("failed to cache shots: %w", err)
		}
	}

	var shots []Shot
	if err := json.Unmarshal(resp.Body(), &shots); err != nil {
		return nil, fmt.Errorf("failed to decode shots: %w", err)
	}

	return Transform(shots, c.handle), nil
}
