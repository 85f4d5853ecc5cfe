// Package naming derives schema property names from Go method names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Direction says whether a method produces a value (Out) or consumes one (In).
type Direction int

const (
	Out Direction = iota // accessor: GetTitle, IsActive, HasChildren
	In                   // mutator: SetTitle
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

var prefixes = map[Direction][]string{
	Out: {"get", "is", "has"},
	In:  {"set"},
}

// PropertyName returns the property name for methodName.
//
// An accessor prefix (get, is, has for Out; set for In) is stripped when it
// is followed by an upper-case rune. Prefix matching ignores the case of the
// first rune, so both getTitle and GetTitle yield "title". The first rune of
// the result is lower-cased.
func PropertyName(dir Direction, methodName string) string {
	for _, p := range prefixes[dir] {
		if rest, ok := cutPrefix(methodName, p); ok {
			return LowerFirst(rest)
		}
	}
	return LowerFirst(methodName)
}

func cutPrefix(name, prefix string) (string, bool) {
	if len(name) <= len(prefix) {
		return "", false
	}
	if !strings.EqualFold(name[:len(prefix)], prefix) || name[1:len(prefix)] != prefix[1:] {
		return "", false
	}
	rest := name[len(prefix):]
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return rest, true
}

// LowerFirst lower-cases the leading rune of s, keeping acronyms intact:
// "Title" becomes "title", "ID" stays "ID" and "URLPath" becomes "urlPath".
// A plural acronym is one word: "IDs" becomes "ids" and "URLsByHost"
// becomes "urlsByHost".
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return s
	}
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == len(runes) && n > 1:
		return s
	case n > 1 && pluralAcronym(runes, n):
	case n > 1:
		n-- // the last upper-case rune starts the next word
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// pluralAcronym reports whether the upper-case run runes[:n] is followed by
// a lone "s" that ends the word.
func pluralAcronym(runes []rune, n int) bool {
	if runes[n] != 's' {
		return false
	}
	return n+1 == len(runes) || unicode.IsUpper(runes[n+1])
}
