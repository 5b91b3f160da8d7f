package util

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)

// LooksLikeHTML reports whether s contains at least one markup tag. A bare
// "<3" or "a < b" does not count.
func LooksLikeHTML(s string) bool {
	return htmlTagPattern.MatchString(s)
}

// PlainText returns the visible text of s when it carries HTML markup (as
// happens when reviews are pasted from a product page) and s unchanged
// otherwise. Script and style bodies are dropped; block elements become line
// breaks so separate reviews stay on separate lines.
func PlainText(s string) string {
	if !LooksLikeHTML(s) {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if collapsed := strings.Join(strings.Fields(line), " "); collapsed != "" {
			result = append(result, collapsed)
		}
	}
	return strings.Join(result, "\n")
}
