package feed_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social/feed"
	"social/models"
)

func activityAt(content string, ts time.Time) models.Activity {
	return models.Activity{
		Type:    "twitter",
		Content: content,
		DateTime: models.DateTime{
			Action: "Tweeted",
			TS:     ts,
		},
	}
}

func TestAssembleSortsDescending(t *testing.T) {
	now := time.Now().UTC()

	assembled := feed.Assemble(feed.DefaultSize,
		[]models.Activity{activityAt("an hour ago", now.Add(-time.Hour))},
		[]models.Activity{activityAt("three days ago", now.Add(-3*24*time.Hour))},
		[]models.Activity{activityAt("five minutes ago", now.Add(-5*time.Minute))},
	)

	require.Len(t, assembled, 3)
	assert.Equal(t, "five minutes ago", assembled[0].Content)
	assert.Equal(t, "an hour ago", assembled[1].Content)
	assert.Equal(t, "three days ago", assembled[2].Content)
}

func TestAssembleTruncates(t *testing.T) {
	now := time.Now().UTC()

	var items []models.Activity
	for i := 0; i < 20; i++ {
		items = append(items, activityAt("item", now.Add(-time.Duration(i)*time.Minute)))
	}

	assembled := feed.Assemble(feed.DefaultSize, items)
	require.Len(t, assembled, feed.DefaultSize)

	// The newest items survive the cut
	assert.Equal(t, now, assembled[0].DateTime.TS)
	assert.Equal(t, now.Add(-11*time.Minute), assembled[len(assembled)-1].DateTime.TS)
}

func TestAssembleEmpty(t *testing.T) {
	assert.Empty(t, feed.Assemble(feed.DefaultSize))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC()

	err := feed.Write(dir, []models.Activity{
		{
			Type:    "github",
			Content: `Created [@alice/widgets](https://github.com/alice/widgets "View alice/widgets on GitHub")`,
			DateTime: models.DateTime{
				Action: "On",
				TS:     now.Add(-2 * time.Hour),
			},
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "activities.json"))
	require.NoError(t, err)

	// Markdown content must come out unescaped
	assert.Contains(t, string(data), `"View alice/widgets on GitHub"`)

	var decoded []struct {
		Type     string `json:"type"`
		Content  string `json:"content"`
		DateTime struct {
			URL    string `json:"url"`
			Action string `json:"action"`
			TS     string `json:"ts"`
		} `json:"datetime"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	assert.Equal(t, "github", decoded[0].Type)
	assert.Equal(t, "On", decoded[0].DateTime.Action)

	// The timestamp serializes as a relative string, not a date
	assert.Contains(t, decoded[0].DateTime.TS, "ago")
}

func TestCacheRaw(t *testing.T) {
	dir := t.TempDir()

	body := []byte(`[{"id": 1}]`)
	require.NoError(t, feed.CacheRaw(dir, "dribbble.json", body))

	data, err := os.ReadFile(filepath.Join(dir, "dribbble.json"))
	require.NoError(t, err)
	assert.Equal(t, body, data)
}
