package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"social/markdown"
	"social/models"
	"social/timeutil"
)

const profileRoot = "https://twitter.com"

// Retweets of retweets do not happen in practice, but the data graph
// could in theory cycle, so linking stops recursing past this depth.
const maxRetweetDepth = 4

type URLEntity struct {
	URL         string `json:"url"`
	DisplayURL  string `json:"display_url"`
	ExpandedURL string `json:"expanded_url"`
}

type Hashtag struct {
	Text string `json:"text"`
}

type Mention struct {
	ScreenName string `json:"screen_name"`
	IDStr      string `json:"id_str"`
}

type Media struct {
	IDStr       string `json:"id_str"`
	URL         string `json:"url"`
	DisplayURL  string `json:"display_url"`
	ExpandedURL string `json:"expanded_url"`
}

type Entities struct {
	Hashtags     []Hashtag   `json:"hashtags"`
	UserMentions []Mention   `json:"user_mentions"`
	URLs         []URLEntity `json:"urls"`
	Media        []Media     `json:"media"`
}

type ExtendedEntities struct {
	Media []Media `json:"media"`
}

type User struct {
	ScreenName string `json:"screen_name"`
}

// Tweet mirrors the timeline payload. RetweetedStatus points at the
// reposted original, which shares this shape.
type Tweet struct {
	IDStr            string            `json:"id_str"`
	FullText         string            `json:"full_text"`
	Lang             string            `json:"lang"`
	User             User              `json:"user"`
	Entities         Entities          `json:"entities"`
	ExtendedEntities *ExtendedEntities `json:"extended_entities"`
	RetweetedStatus  *Tweet            `json:"retweeted_status"`
	CreatedAt        string            `json:"created_at"`
}

// LinkText rewrites the tweet text with its entities turned into
// markdown links. Retweets re-derive the original's linked text and
// prefix it with an attribution link.
func LinkText(t *Tweet) string {
	return linkText(t, 0)
}

func linkText(t *Tweet, depth int) string {
	if t.RetweetedStatus != nil && depth < maxRetweetDepth {
		handle := t.RetweetedStatus.User.ScreenName
		return fmt.Sprintf("RT %s %s",
			markdown.Link("@"+handle, profileRoot+"/"+handle, fmt.Sprintf("View %s on Twitter", handle)),
			linkText(t.RetweetedStatus, depth+1),
		)
	}

	text := t.FullText

	for _, mention := range t.Entities.UserMentions {
		text = strings.ReplaceAll(text, "@"+mention.ScreenName,
			markdown.Link("@"+mention.ScreenName, profileRoot+"/"+mention.ScreenName,
				fmt.Sprintf("View @%s on Twitter", mention.ScreenName)))
	}

	for _, hashtag := range t.Entities.Hashtags {
		text = strings.ReplaceAll(text, "#"+hashtag.Text,
			markdown.Link("#"+hashtag.Text, profileRoot+"/hashtag/"+hashtag.Text,
				fmt.Sprintf("View #%s on Twitter", hashtag.Text)))
	}

	for _, url := range t.Entities.URLs {
		text = strings.ReplaceAll(text, url.URL, fmt.Sprintf("[%s](%s)", url.DisplayURL, url.ExpandedURL))
	}

	// Native media comes with a nicer display URL in the extended
	// entities, so handle those first and only strip the leftovers.
	extended := map[string]bool{}
	if t.ExtendedEntities != nil {
		for _, media := range t.ExtendedEntities.Media {
			extended[media.URL] = true
			text = strings.ReplaceAll(text, media.URL,
				fmt.Sprintf("[https://%s](https://%s)", media.DisplayURL, media.DisplayURL))
		}
	}

	for _, media := range t.Entities.Media {
		if extended[media.URL] {
			continue
		}
		text = strings.ReplaceAll(text, media.URL, "")
	}

	return text
}

// Transform converts tweets into feed activities. A tweet whose
// timestamp cannot be parsed is dropped, not substituted.
func Transform(tweets []Tweet) []models.Activity {
	activities := make([]models.Activity, 0, len(tweets))

	for i := range tweets {
		tweet := &tweets[i]

		createdAt, err := timeutil.Parse(tweet.CreatedAt, timeutil.TwitterLayout)
		if err != nil {
			log.WithError(err).WithField("id", tweet.IDStr).Warn("Dropping tweet with bad timestamp")
			continue
		}

		activities = append(activities, models.Activity{
			Type:    "twitter",
			Content: LinkText(tweet),
			DateTime: models.DateTime{
				URL:    fmt.Sprintf("%s/%s/status/%s", profileRoot, tweet.User.ScreenName, tweet.IDStr),
				Action: "Tweeted",
				TS:     createdAt,
			},
		})
	}

	return activities
}

type Client struct {
	http   *resty.Client
	handle string
	count  int
}

func NewClient(apiRoot string, bearerToken string, handle string, count int) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiRoot).
			SetAuthToken(bearerToken).
			SetTimeout(30 * time.Second),
		handle: handle,
		count:  count,
	}
}

// Fetch pulls the user timeline and converts it. Any transport or
// top-level decode failure means this provider contributes nothing
// this run.
func (c *Client) Fetch(ctx context.Context) ([]models.Activity, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"tweet_mode":  "extended",
			"count":       strconv.Itoa(c.count),
			"screen_name": c.handle,
		}).
		Get("/1.1/statuses/user_timeline.json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch timeline: unexpected status %s", resp.Status())
	}

	var tweets []Tweet
	if err := json.Unmarshal(resp.Body(), &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}

	return Transform(tweets), nil
}
