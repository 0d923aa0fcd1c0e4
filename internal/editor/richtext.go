package editor

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var bodyPolicy = bluemonday.UGCPolicy()

// Sanitize strips markup a note body must not carry, such as scripts and
// event handler attributes.
func Sanitize(body string) string {
	return bodyPolicy.Sanitize(body)
}

// blockElements end a paragraph when converting to plain text.
var blockElements = map[string]bool{
	"p": true, "br": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true,
}

// PlainText returns the text content of a rich text body with whitespace
// collapsed to single spaces.
func PlainText(body string) string {
	return strings.Join(Paragraphs(body), " ")
}

// Paragraphs returns the text of each block of a rich text body, with
// whitespace collapsed. Empty blocks are dropped.
func Paragraphs(body string) []string {
	z := html.NewTokenizer(strings.NewReader(body))
	paragraphs := []string{}
	var current strings.Builder
	flush := func() {
		if text := strings.Join(strings.Fields(current.String()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			return paragraphs
		case html.TextToken:
			if skip == 0 {
				current.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "script" || tag == "style":
				skip++
			case blockElements[tag]:
				flush()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case (tag == "script" || tag == "style") && skip > 0:
				skip--
			case blockElements[tag]:
				flush()
			}
		}
	}
}

// Excerpt returns at most limit runes of the body's plain text, followed by
// "..." when it was cut.
func Excerpt(body string, limit int) string {
	text := []rune(PlainText(body))
	if len(text) <= limit {
		return string(text)
	}
	return strings.TrimSpace(string(text[:limit])) + "..."
}

// FromPlainText turns plain text into a rich text body. Blank lines separate
// paragraphs and single line breaks are kept.
func FromPlainText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var b strings.Builder
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		lines := strings.Split(paragraph, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(line))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
