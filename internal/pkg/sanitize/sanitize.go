// Package sanitize cleans admin-authored rich text before it is stored or rendered.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "b", "strong", "i", "em", "u", "s", "ul", "ol", "li",
		"blockquote", "code", "pre", "h1", "h2", "h3", "h4", "h5", "h6",
		"span", "div", "hr", "table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	p.RequireNoReferrerOnLinks(true)
	p.SkipElementsContent("script", "style", "iframe", "object", "embed", "noscript", "template", "frameset")
	return p
}

// HTML returns s reduced to the formatting allowlist. Unknown tags are
// unwrapped, their text kept.
func HTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// Blank reports whether s carries no visible text once sanitized, as with
// "<p> </p>" or a lone script element.
func Blank(s string) bool {
	clean := HTML(s)
	if clean == "" {
		return true
	}
	if strings.Contains(clean, "<img") || strings.Contains(clean, "<hr") {
		return false
	}
	return strings.TrimSpace(textOnly.Sanitize(clean)) == ""
}

var textOnly = bluemonday.StrictPolicy()
