package docx

import (
	"regexp"
	"strings"
)

var (
	textRunPattern = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// span is a byte range [start, end) of the document body.
type span struct {
	start int
	end   int
}

// paragraphs returns the spans of all <w:p> elements in closing order, so
// a paragraph nested in a text box is reported before the one containing it.
// Self-closing paragraphs carry no text and are not reported.
func paragraphs(doc string) []span {
	var (
		out  []span
		open []int
	)
	for i := 0; i < len(doc); {
		lt := strings.IndexByte(doc[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		gt := strings.IndexByte(doc[pos:], '>')
		if gt < 0 {
			break
		}
		end := pos + gt + 1
		tag := doc[pos:end]

		switch {
		case tag == "</w:p>":
			if n := len(open); n > 0 {
				out = append(out, span{start: open[n-1], end: end})
				open = open[:n-1]
			}
		case isParagraphOpen(tag):
			if !strings.HasSuffix(tag, "/>") {
				open = append(open, pos)
			}
		}
		i = end
	}
	return out
}

// isParagraphOpen matches <w:p> and <w:p ...> but not <w:pPr> and the like.
func isParagraphOpen(tag string) bool {
	if !strings.HasPrefix(tag, "<w:p") || len(tag) < 5 {
		return false
	}
	switch tag[4] {
	case '>', '/', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// paragraphText concatenates the decoded text runs of a paragraph and
// collapses whitespace.
func paragraphText(p string) string {
	var b strings.Builder
	for _, m := range textRunPattern.FindAllStringSubmatch(p, -1) {
		b.WriteString(entityReplacer.Replace(m[1]))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// findPlaceholder returns the first paragraph whose text equals marker.
func findPlaceholder(doc, marker string) (span, bool) {
	for _, s := range paragraphs(doc) {
		if paragraphText(doc[s.start:s.end]) == marker {
			return s, true
		}
	}
	return span{}, false
}
