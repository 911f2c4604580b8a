package session

import "unicode"

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// smartDelete removes the previous word from the tail of the buffer in
// three phases: trailing whitespace first; then, if the tail is a word
// character, the trailing word run; otherwise the trailing punctuation
// run, any whitespace exposed under it, and finally a word run if one is
// exposed. Punctuation therefore jumps back past the preceding word.
func smartDelete(buf []rune) ([]rune, int) {
	removed := 0
	pop := func() {
		buf = buf[:len(buf)-1]
		removed++
	}
	tail := func() rune { return buf[len(buf)-1] }

	if len(buf) == 0 {
		return buf, 0
	}
	for len(buf) > 0 && unicode.IsSpace(tail()) {
		pop()
	}
	if len(buf) == 0 {
		return buf, removed
	}
	if isWordRune(tail()) {
		for len(buf) > 0 && isWordRune(tail()) {
			pop()
		}
		return buf, removed
	}
	for len(buf) > 0 && !isWordRune(tail()) && !unicode.IsSpace(tail()) {
		pop()
	}
	for len(buf) > 0 && unicode.IsSpace(tail()) {
		pop()
	}
	for len(buf) > 0 && isWordRune(tail()) {
		pop()
	}
	return buf, removed
}
