package export

import (
	"encoding/xml"
	"strings"
)

// EscapeXML escapes s for use as XML character data or attribute value.
// Characters that are not allowed in XML are replaced with U+FFFD.
func EscapeXML(s string) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
