package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	out := Markdown("# Title\n\nSome **bold** text")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestMarkdown_StripsScripts(t *testing.T) {
	out := Markdown("hello <script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")
}

func TestTruncateWordsHTML_ShortTextUnchanged(t *testing.T) {
	in := "<p>one two three</p>"
	assert.Equal(t, in, TruncateWordsHTML(in, 3))
}

func TestTruncateWordsHTML_ClosesOpenTags(t *testing.T) {
	in := "<p>one <strong>two three</strong> four</p>"
	assert.Equal(t, "<p>one <strong>two …</strong></p>", TruncateWordsHTML(in, 2))
}

func TestTruncateWordsHTML_WordAtTokenEnd(t *testing.T) {
	in := "<p>one two</p><p>three</p>"
	assert.Equal(t, "<p>one two …</p>", TruncateWordsHTML(in, 2))
}

func TestTruncateWordsHTML_VoidElementsNotClosed(t *testing.T) {
	in := "<p>a<br>b c d</p>"
	assert.Equal(t, "<p>a<br>b …</p>", TruncateWordsHTML(in, 2))
}

func TestTruncateWordsHTML_Thirty(t *testing.T) {
	words := strings.Repeat("слово ", 40)
	out := TruncateWordsHTML(Markdown(words), 30)
	assert.Equal(t, 30, wordsIn(strings.TrimSuffix(strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>"), ellipsis)))
	assert.True(t, strings.HasSuffix(out, ellipsis+"</p>"))
}

func TestTruncateWordsHTML_NonPositive(t *testing.T) {
	assert.Equal(t, "", TruncateWordsHTML("<p>a b</p>", 0))
}
