package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"mvdan.cc/xurls/v2"
)

var (
	titleEscaper = strings.NewReplacer(`"`, "&#34;", "(", "&#40;", ")", "&#41;")

	// Matches @name tokens in free text. Hashtag-shaped tokens are
	// deliberately not matched anywhere: on a code host a #123 can
	// refer to an issue in a different repository, so there is no
	// safe link target for them.
	mentionPattern = regexp.MustCompile(`(@[\w_-]+)`)

	urlPattern = xurls.Strict()
)

// EscapeLinkTitle escapes the characters that would terminate a
// markdown link's quoted title. It must be applied to every
// human-supplied string used in a title position, and never to the
// link target or label.
func EscapeLinkTitle(s string) string {
	return titleEscaper.Replace(s)
}

// Link builds a `[label](target "title")` markdown link. The title is
// escaped here so callers can pass raw text.
func Link(label string, target string, title string) string {
	return fmt.Sprintf("[%s](%s \"%s\")", label, target, EscapeLinkTitle(title))
}

// LinkBareURLs rewrites every URL found in free text into a markdown
// link whose label and target are the URL itself. A URL immediately
// preceded by "](" is already the target of a markdown link and is
// left alone.
func LinkBareURLs(text string) string {
	var urls []string

	for _, match := range urlPattern.FindAllStringIndex(text, -1) {
		start := match[0]
		if start >= 2 && text[start-2] == ']' && text[start-1] == '(' {
			continue
		}

		urls = append(urls, text[match[0]:match[1]])
	}

	// Replacement is literal, so a URL occurring twice only needs one
	// pass. Replacing it again would nest the link.
	for _, url := range lo.Uniq(urls) {
		text = strings.ReplaceAll(text, url, fmt.Sprintf("[%s](%s)", url, url))
	}

	return text
}

// LinkMentions rewrites @name tokens into profile links under the
// given base URL, e.g. "@alice" -> "[@alice](https://github.com/alice)".
func LinkMentions(text string, profileBase string) string {
	mentions := lo.Uniq(mentionPattern.FindAllString(text, -1))

	for _, mention := range mentions {
		handle := strings.TrimPrefix(mention, "@")
		text = strings.ReplaceAll(text, mention, fmt.Sprintf("[%s](%s/%s)", mention, profileBase, handle))
	}

	return text
}
