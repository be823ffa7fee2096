// Package encoding provides the text escaping used when emitting XML.
package encoding

import "strings"

// Replacements happen in a single pass, so entities already present in
// the input are treated as literal text and re-escaped.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// EscapeXMLText escapes the basic XML entities for element content.
// Quotes pass through unchanged.
func EscapeXMLText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeXMLAttr escapes text for a double-quoted attribute value.
func EscapeXMLAttr(s string) string {
	return attrEscaper.Replace(s)
}
