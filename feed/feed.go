package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"social/models"
)

// DefaultSize is how many of the newest activities make it into the
// published feed.
const DefaultSize = 12

// Assemble merges per-provider activity lists into one feed sorted by
// timestamp descending and truncated to size. Sorting is stable, so
// ties keep their input order.
func Assemble(size int, lists ...[]models.Activity) []models.Activity {
	activities := lo.Flatten(lists)

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].DateTime.TS.After(activities[j].DateTime.TS)
	})

	if len(activities) > size {
		activities = activities[:size]
	}

	return activities
}

// Write serializes the feed to activities.json in dir, overwriting
// any previous run's output. HTML escaping is disabled so markdown
// content comes out as written.
func Write(dir string, activities []models.Activity) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(activities); err != nil {
		return fmt.Errorf("failed to serialize feed: %w", err)
	}

	path := filepath.Join(dir, "activities.json")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write feed to %s: %w", path, err)
	}

	return nil
}

// CacheRaw writes a provider's raw API response verbatim, for
// downstream consumers that want the unprocessed data.
func CacheRaw(dir string, name string, body []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("failed to cache %s: %w", name, err)
	}
	return nil
}
