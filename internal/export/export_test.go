package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_StripsInlineMarkup(t *testing.T) {
	assert.Equal(t, "hello world", Text("hello <b>world</b>"))
	assert.Equal(t, "plain", Text("plain"))
}

func TestText_BlockTagsBecomeLineBreaks(t *testing.T) {
	got := Text("<p>first</p><p>second</p>")

	assert.Equal(t, "first\n\nsecond", got)
}

func TestText_ListItems(t *testing.T) {
	got := Text("<ul><li>one</li><li>two</li></ul>")

	assert.Equal(t, "one\n\ntwo", got)
}

func TestText_UnescapesEntities(t *testing.T) {
	assert.Equal(t, "fish & chips < tea", Text("fish &amp; chips &lt; tea"))
}

func TestText_TrimsSurroundingWhitespace(t *testing.T) {
	assert.Equal(t, "body", Text("<p></p><p>body</p>"))
}

func TestHTML_WrapsContentInStandalonePage(t *testing.T) {
	got := HTML("My <Doc>", "<p>body</p>")

	assert.Contains(t, got, "<!DOCTYPE html>")
	assert.Contains(t, got, "<title>My &lt;Doc&gt;</title>")
	assert.Contains(t, got, "<p>body</p>")
}
