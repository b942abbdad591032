// Package htmlsanitize cleans user-supplied HTML (memo bodies, SMS text,
// document descriptions) before it is rendered with template.HTML.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy

	strict = bluemonday.StrictPolicy()
)

func getPolicy() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.NewPolicy()

		p.AllowElements("p", "br", "hr", "div", "span",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "u", "s", "sub", "sup", "mark", "small",
			"ul", "ol", "li", "blockquote", "pre", "code")

		p.AllowAttrs("href").OnElements("a")
		p.AllowURLSchemes("http", "https", "mailto")
		p.AllowRelativeURLs(true)
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)

		p.AllowImages()

		p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption")
		p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("th", "td")
		p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		p.AllowStyles("width", "text-align", "vertical-align", "background-color", "color").
			OnElements("table", "tr", "th", "td")

		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers, unsafe URLs and anything else not
// on the allow list.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return getPolicy().Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s carries no markup. A lone "<" or ">" (as in
// "5 < 10") is treated as text.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and wraps it in a paragraph, turning newlines
// into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay accepts either plain text or HTML and returns safe HTML.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}

// StripTags removes all markup and returns plain text, for content that is
// never rendered as HTML such as SMS messages.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
