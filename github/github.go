package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"social/feed"
	"social/markdown"
	"social/models"
	"social/timeutil"
)

const webRoot = "https://github.com"

type Repository struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Event is one entry from the public events listing. The payload
// shape depends entirely on Type.
type Event struct {
	Type      string     `json:"type"`
	Repo      Repository `json:"repo"`
	Payload   Payload    `json:"payload"`
	CreatedAt string     `json:"created_at"`
}

// cleanComment prepares a comment or issue body for interpolation:
// quoted email replies are cut off, bare URLs and @mentions become
// markdown links. Hashtags stay plain text since #123 could refer to
// an issue in any repository.
func cleanComment(body string) string {
	text, _, _ := strings.Cut(body, "\n\n> On")
	text = markdown.LinkBareURLs(text)
	text = markdown.LinkMentions(text, webRoot)
	return text
}

func repoLink(name string) string {
	return markdown.Link("@"+name, webRoot+"/"+name, fmt.Sprintf("View %s on GitHub", name))
}

// RenderContent maps an event onto its sentence template. The
// dispatch is closed: event types outside the fixed set are an
// explicit error, never a fallback render.
func RenderContent(event *Event) (string, error) {
	payload := event.Payload

	switch event.Type {
	case "CommitCommentEvent":
		body, err := payload.GetString("comment.body")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s on %s", cleanComment(body),
			markdown.Link(event.Repo.Name, event.Repo.URL, fmt.Sprintf("View %s on GitHub", event.Repo.Name))), nil

	case "IssueCommentEvent":
		action, err := payload.GetString("action")
		if err != nil {
			return "", err
		}
		if action != "created" {
			return "", &UnsupportedEventError{Type: "IssueCommentEvent." + action}
		}

		title, err := payload.GetString("issue.title")
		if err != nil {
			return "", err
		}
		body, err := payload.GetString("comment.body")
		if err != nil {
			return "", err
		}
		issueURL, err := payload.GetString("issue.html_url")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s on %s", cleanComment(body),
			markdown.Link(title, issueURL, fmt.Sprintf("View %s on GitHub", title))), nil

	case "ForkEvent":
		fullName, err := payload.GetString("forkee.full_name")
		if err != nil {
			return "", err
		}
		forkeeURL, err := payload.GetString("forkee.html_url")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Forked %s to %s", repoLink(event.Repo.Name),
			markdown.Link("@"+fullName, forkeeURL, fmt.Sprintf("View %s on GitHub", fullName))), nil

	case "CreateEvent":
		refType, err := payload.GetString("ref_type")
		if err != nil {
			return "", err
		}
		if refType != "repository" {
			return "", &UnsupportedEventError{Type: "CreateEvent." + refType}
		}
		return fmt.Sprintf("Created %s", repoLink(event.Repo.Name)), nil

	case "IssuesEvent":
		action, err := payload.GetString("action")
		if err != nil {
			return "", err
		}

		title, err := payload.GetString("issue.title")
		if err != nil {
			return "", err
		}
		issueURL, err := payload.GetString("issue.html_url")
		if err != nil {
			return "", err
		}

		switch action {
		case "opened":
			repo, err := payload.GetString("repository.full_name")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Opened %s in %s",
				markdown.Link(title, issueURL, fmt.Sprintf("View %s on GitHub", title)),
				repoLink(repo)), nil
		case "closed":
			return fmt.Sprintf("Closed %s in %s",
				markdown.Link(title, issueURL, fmt.Sprintf("View %s on GitHub", title)),
				repoLink(event.Repo.Name)), nil
		default:
			return "", &UnsupportedEventError{Type: "IssuesEvent." + action}
		}

	case "PullRequestEvent":
		action, err := payload.GetString("action")
		if err != nil {
			return "", err
		}

		var verb string
		switch action {
		case "opened":
			verb = "Opened"
		case "closed":
			verb = "Closed"
		default:
			return "", &UnsupportedEventError{Type: "PullRequestEvent." + action}
		}

		fullName, err := payload.GetString("pull_request.base.repo.full_name")
		if err != nil {
			return "", err
		}
		title, err := payload.GetString("pull_request.title")
		if err != nil {
			return "", err
		}
		prURL, err := payload.GetString("pull_request.html_url")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s a pull request in %s:\n\n%s", verb, repoLink(fullName),
			markdown.Link(title, prURL, "View this PR on GitHub")), nil

	case "PushEvent":
		count, err := payload.GetInt("distinct_size")
		if err != nil {
			return "", err
		}

		before, err := payload.GetString("before")
		if err != nil {
			return "", err
		}
		head, err := payload.GetString("head")
		if err != nil {
			return "", err
		}

		plural := "s"
		if count == 1 {
			plural = ""
		}

		compareURL := fmt.Sprintf("%s/%s/compare/%s...%s", webRoot, event.Repo.Name, before, head)
		return fmt.Sprintf("Pushed %s to %s",
			markdown.Link(fmt.Sprintf("%d commit%s", count, plural), compareURL, "View these changes on GitHub"),
			repoLink(event.Repo.Name)), nil

	case "PublicEvent":
		fullName, err := payload.GetString("repository.full_name")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Open sourced %s", repoLink(fullName)), nil

	case "ReleaseEvent":
		fullName, err := payload.GetString("repository.full_name")
		if err != nil {
			return "", err
		}
		tag, err := payload.GetString("release.tag_name")
		if err != nil {
			return "", err
		}
		releaseURL, err := payload.GetString("release.html_url")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Released %s",
			markdown.Link(fmt.Sprintf("@%s %s", fullName, tag), releaseURL, "View this release on GitHub")), nil

	default:
		return "", &UnsupportedEventError{Type: event.Type}
	}
}

// Transform converts events into feed activities. Events that fail to
// render or carry a bad timestamp are skipped individually; one bad
// event never loses the batch.
func Transform(events []Event) []models.Activity {
	activities := make([]models.Activity, 0, len(events))

	for i := range events {
		event := &events[i]

		content, err := RenderContent(event)
		if err != nil {
			log.WithError(err).WithField("type", event.Type).Info("Skipping event")
			continue
		}

		createdAt, err := timeutil.Parse(event.CreatedAt, timeutil.ISOLayout)
		if err != nil {
			log.WithError(err).WithField("type", event.Type).Warn("Dropping event with bad timestamp")
			continue
		}

		activities = append(activities, models.Activity{
			Type:    "github",
			Content: content,
			DateTime: models.DateTime{
				URL:    "",
				Action: "On",
				TS:     createdAt,
			},
		})
	}

	return activities
}

type Client struct {
	http     *resty.Client
	user     string
	cacheDir string
}

// NewClient builds a GitHub API client. When cacheDir is non-empty
// the raw repositories listing is written there verbatim for other
// consumers of the site data.
func NewClient(apiRoot string, accessToken string, user string, cacheDir string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiRoot).
			SetAuthToken(accessToken).
			SetTimeout(30 * time.Second),
		user:     user,
		cacheDir: cacheDir,
	}
}

// Fetch grabs the repositories listing (cached to disk for the site's
// code tab) and the public events, and converts the events.
func (c *Client) Fetch(ctx context.Context) ([]models.Activity, error) {
	repos, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("sort", "pushed").
		Get(fmt.Sprintf("/users/%s/repos", c.user))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	if repos.IsError() {
		return nil, fmt.Errorf("failed to fetch repositories: unexpected status %s", repos.Status())
	}

	if c.cacheDir != "" {
		if err := feed.CacheRaw(c.cacheDir, "github-repos.json", repos.Body()); err != nil {
			return nil, fmt.Errorf("failed to cache repositories: %w", err)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/users/%s/events/public", c.user))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch events: unexpected status %s", resp.Status())
	}

	var events []Event
	if err := json.Unmarshal(resp.Body(), &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return Transform(events), nil
}
