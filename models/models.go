package models

import (
	"encoding/json"
	"time"

	"social/timeutil"
)

// Activity is one entry in the assembled feed. The JSON field names
// are the external contract; the website keys off them directly.
type Activity struct {
	Type     string   `json:"type"`
	Content  string   `json:"content"`
	DateTime DateTime `json:"datetime"`
}

// DateTime groups the item permalink, the verb shown next to the
// relative time ("Tweeted", "On", "Shot") and the normalized
// timestamp. URL may be empty; not every provider has a canonical
// per-item link.
type DateTime struct {
	URL    string
	Action string
	TS     time.Time
}

// MarshalJSON serializes the timestamp as a relative-time string.
// The absolute time only exists in memory for sorting.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL    string `json:"url"`
		Action string `json:"action"`
		TS     string `json:"ts"`
	}{
		URL:    d.URL,
		Action: d.Action,
		TS:     timeutil.Relative(d.TS),
	})
}
