package sanitize

import "github.com/microcosm-cc/bluemonday"

// Two policies cover every text field in the API: plain fields (titles,
// names, tags) lose all markup, rich-text note fields keep a small set
// of formatting tags.
var (
	strict = bluemonday.StrictPolicy()
	notes  = notesPolicy()
)

func notesPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "u", "h1", "h2", "h3", "ul", "ol", "li")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowStandardURLs()
	return p
}

// Text strips all HTML from a plain-text field.
func Text(s string) string {
	return strict.Sanitize(s)
}

// HTML keeps basic formatting tags and strips everything dangerous.
func HTML(s string) string {
	return notes.Sanitize(s)
}

// TextSlice sanitizes each element, preserving order.
func TextSlice(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strict.Sanitize(s)
	}
	return out
}
