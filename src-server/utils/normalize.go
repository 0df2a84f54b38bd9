package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Common speech-recognition mistakes for tango vocabulary. Siri in particular
// hears "practical" for "practica" and mangles "milonga" in creative ways.
// Longer phrases are replaced first.
var fuzzyTerms = []struct{ heard, meant string }{
	{"tango classes", "classes"},
	{"tango lessons", "lessons"},
	{"tangle events", "tango events"},
	{"tango class", "class"},
	{"tango lesson", "lesson"},
	{"practicals", "practicas"},
	{"mill onga", "milonga"},
	{"practical", "practica"},
	{"practices", "practicas"},
	{"melongas", "milongas"},
	{"practice", "practica"},
	{"practico", "practica"},
	{"millonga", "milonga"},
	{"my longa", "milonga"},
	{"mylonga", "milonga"},
	{"malonga", "milonga"},
	{"molonga", "milonga"},
	{"melonga", "milonga"},
	{"practic", "practica"},
	{"pratico", "practica"},
	{"tangle", "tango"},
}

// Whole-word matchers for the fuzzy terms; substring replacement would
// re-match inside already-correct words ("practicas" contains "practic").
var fuzzyRegexps = func() []*regexp.Regexp {
	regexps := make([]*regexp.Regexp, len(fuzzyTerms))
	for i, term := range fuzzyTerms {
		regexps[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term.heard) + `\b`)
	}
	return regexps
}()

// NormalizeQuery lowercases a voice query and repairs speech-recognition
// mishearings of tango terms before parsing.
func NormalizeQuery(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	for i, term := range fuzzyTerms {
		normalized = fuzzyRegexps[i].ReplaceAllString(normalized, term.meant)
	}
	return normalized
}

// strips spaces, uppercase first letter, remove trailing period
func CleanupString(s string) string {
	s = strings.TrimSpace(s)
	s = cases.Title(language.English).String(s)
	s = strings.TrimSuffix(s, ".")
	return s
}
