package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const ellipsis = " …"

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// TruncateWordsHTML оставляет первые n слов текста HTML-фрагмента,
// добавляет многоточие и закрывает оставшиеся открытыми теги.
// Если слов не больше n, фрагмент возвращается без изменений.
func TruncateWordsHTML(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if countWords(s) <= n {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	var open []string
	words := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); !voidElements[tag] {
				open = append(open, tag)
			}
			b.Write(z.Raw())
		case html.EndTagToken:
			name, _ := z.TagName()
			open = closeTag(open, string(name))
			b.Write(z.Raw())
		case html.TextToken:
			raw := string(z.Raw())
			cut, reached := cutAfterWords(raw, n-words)
			if !reached {
				words += wordsIn(raw)
				b.WriteString(raw)
				continue
			}
			b.WriteString(raw[:cut])
			b.WriteString(ellipsis)
			for i := len(open) - 1; i >= 0; i-- {
				b.WriteString("</" + open[i] + ">")
			}
			return b.String()
		default:
			b.Write(z.Raw())
		}
	}
}

func closeTag(open []string, name string) []string {
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == name {
			return open[:i]
		}
	}
	return open
}

func countWords(s string) int {
	z := html.NewTokenizer(strings.NewReader(s))
	total := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return total
		case html.TextToken:
			total += wordsIn(string(z.Raw()))
		}
	}
}

func wordsIn(s string) int {
	return len(strings.FieldsFunc(s, unicode.IsSpace))
}

// cutAfterWords возвращает байтовую позицию конца left-го слова в s.
func cutAfterWords(s string, left int) (int, bool) {
	inWord := false
	seen := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if inWord {
				seen++
				if seen == left {
					return i, true
				}
			}
			inWord = false
		} else {
			inWord = true
		}
		i += size
	}
	if inWord && seen+1 == left {
		return len(s), true
	}
	return 0, false
}
