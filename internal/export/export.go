package export

import (
	"fmt"
	"html"
	"strings"
)

// Text converts a document's markup to plain text for a .txt download
func Text(content string) string {
	var b strings.Builder
	inTag := false
	tag := strings.Builder{}
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>':
			inTag = false
			// Block-level closers become line breaks
			switch strings.ToLower(strings.TrimPrefix(tag.String(), "/")) {
			case "p", "div", "br", "br/", "li", "h1", "h2", "h3", "tr":
				b.WriteByte('\n')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}

// HTML wraps a document's markup in a minimal self-contained page for a
// .html download
func HTML(name, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s</title>
</head>
<body>
    %s
</body>
</html>
`, html.EscapeString(name), content)
}
