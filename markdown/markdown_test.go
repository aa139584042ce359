package markdown_test

import (
	"social/markdown"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLinkTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "empty string",
			text:     "",
			expected: "",
		},
		{
			name:     "no special characters",
			text:     "plain title",
			expected: "plain title",
		},
		{
			name:     "quotes",
			text:     `say "hello"`,
			expected: "say &#34;hello&#34;",
		},
		{
			name:     "parentheses",
			text:     "release (v2)",
			expected: "release &#40;v2&#41;",
		},
		{
			name:     "everything at once",
			text:     `a "quoted" (note)`,
			expected: "a &#34;quoted&#34; &#40;note&#41;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := markdown.EscapeLinkTitle(tt.text)
			assert.Equal(t, tt.expected, result)
			assert.NotContains(t, result, `"`)
			assert.NotContains(t, result, "(")
			assert.NotContains(t, result, ")")
		})
	}
}

func TestLink(t *testing.T) {
	result := markdown.Link("@alice", "https://twitter.com/alice", `View (alice) on "Twitter"`)
	assert.Equal(t, `[@alice](https://twitter.com/alice "View &#40;alice&#41; on &#34;Twitter&#34;")`, result)
}

func TestLinkEscapesTitleOnly(t *testing.T) {
	// The URL and label positions must stay untouched
	result := markdown.Link("count (1)", "https://example.com/a(b)", "count (1)")
	assert.Equal(t, `[count (1)](https://example.com/a(b) "count &#40;1&#41;")`, result)
}

func TestLinkBareURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "no urls",
			text:     "nothing to see here",
			expected: "nothing to see here",
		},
		{
			name:     "bare url",
			text:     "check https://example.com for details",
			expected: "check [https://example.com](https://example.com) for details",
		},
		{
			name:     "url at start of text",
			text:     "https://example.com is great",
			expected: "[https://example.com](https://example.com) is great",
		},
		{
			name:     "already linked url is left alone",
			text:     "see [the docs](https://example.com) for details",
			expected: "see [the docs](https://example.com) for details",
		},
		{
			name:     "repeated url only linked once",
			text:     "https://example.com and https://example.com",
			expected: "[https://example.com](https://example.com) and [https://example.com](https://example.com)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.LinkBareURLs(tt.text))
		})
	}
}

func TestLinkMentions(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "no mentions",
			text:     "plain text",
			expected: "plain text",
		},
		{
			name:     "single mention",
			text:     "thanks @alice",
			expected: "thanks [@alice](https://github.com/alice)",
		},
		{
			name:     "mention with dash and underscore",
			text:     "ping @bob-dev_1",
			expected: "ping [@bob-dev_1](https://github.com/bob-dev_1)",
		},
		{
			name:     "hashtags are not touched",
			text:     "fixes #42",
			expected: "fixes #42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.LinkMentions(tt.text, "https://github.com"))
		})
	}
}
