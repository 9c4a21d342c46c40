package lessonsync

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// tagAliases maps recognized source tag spellings to the canonical safe
// tag. The canonical vocabulary is the delivery channel's rich-text subset.
var tagAliases = map[string]string{
	"b":          "b",
	"strong":     "b",
	"i":          "i",
	"em":         "i",
	"u":          "u",
	"ins":        "u",
	"s":          "s",
	"strike":     "s",
	"del":        "s",
	"code":       "code",
	"pre":        "pre",
	"a":          "a",
	"tg-spoiler": "tg-spoiler",
	"blockquote": "blockquote",
}

// SanitizeMarkup rewrites author markup into the safe tag vocabulary.
// Tags outside the allow-list are not dropped silently: they are escaped
// back into visible text so the author can see and fix them, and each
// correction is reported as a warning. Hyperlinks without a usable href
// are escaped likewise. Text is re-escaped so no stray angle bracket
// survives into the output. If the tokenizer fails mid-stream the whole
// input is escaped instead of failing the caller.
func SanitizeMarkup(text string) (string, []string) {
	if text == "" {
		return "", nil
	}

	var (
		out      strings.Builder
		warnings []string
		open     []string
	)

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				// Close anything the author left unbalanced.
				for i := len(open) - 1; i >= 0; i-- {
					out.WriteString("</" + open[i] + ">")
					warnings = append(warnings, fmt.Sprintf("closed unbalanced <%s>", open[i]))
				}
				return out.String(), warnings
			}
			warnings = append(warnings, fmt.Sprintf("markup parse failed, text fully escaped: %v", z.Err()))
			return html.EscapeString(text), warnings

		case html.TextToken:
			out.WriteString(html.EscapeString(string(z.Text())))

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			name, attrs := tagAndAttrs(z)
			canon := canonicalTag(name, attrs)

			switch {
			case canon == "":
				out.WriteString(html.EscapeString(raw))
				warnings = append(warnings, fmt.Sprintf("escaped unsupported tag <%s>", name))
			case canon == "a":
				href := strings.TrimSpace(attrs["href"])
				if href == "" {
					out.WriteString(html.EscapeString(raw))
					warnings = append(warnings, "escaped link without target")
					break
				}
				out.WriteString(`<a href="` + html.EscapeString(href) + `">`)
				open = append(open, "a")
			default:
				out.WriteString("<" + canon + ">")
				open = append(open, canon)
			}

		case html.EndTagToken:
			raw := string(z.Raw())
			name, _ := tagAndAttrs(z)
			canon := tagAliases[name]
			if name == "span" {
				canon = "tg-spoiler"
			}
			if canon == "" || !contains(open, canon) {
				out.WriteString(html.EscapeString(raw))
				warnings = append(warnings, fmt.Sprintf("escaped unmatched closing tag </%s>", name))
				break
			}
			// Close inner tags left open above the matching one.
			for len(open) > 0 {
				top := open[len(open)-1]
				open = open[:len(open)-1]
				out.WriteString("</" + top + ">")
				if top == canon {
					break
				}
				warnings = append(warnings, fmt.Sprintf("closed unbalanced <%s>", top))
			}

		case html.CommentToken, html.DoctypeToken:
			warnings = append(warnings, "dropped comment")
		}
	}
}

// tagAndAttrs reads the current tag token's name and attributes.
func tagAndAttrs(z *html.Tokenizer) (string, map[string]string) {
	nameBytes, hasAttr := z.TagName()
	name := string(nameBytes)
	if !hasAttr {
		return name, nil
	}
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return name, attrs
}

// canonicalTag resolves a source tag to its canonical safe tag, or "" when
// the tag is not allowed. A span carrying the spoiler class collapses to
// the canonical spoiler tag; any other span is disallowed.
func canonicalTag(name string, attrs map[string]string) string {
	if name == "span" {
		if strings.Contains(attrs["class"], "tg-spoiler") {
			return "tg-spoiler"
		}
		return ""
	}
	return tagAliases[name]
}

func contains(stack []string, name string) bool {
	for _, s := range stack {
		if s == name {
			return true
		}
	}
	return false
}
