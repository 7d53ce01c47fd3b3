// Package specifier implements format-specifier consistency checking and
// repair for translated strings.
//
// Two placeholder conventions coexist in Qt source strings: positional
// arguments (%1..%9), which QString::arg substitutes in any order, and
// printf-style specifiers (%s, %d, %n, ...), which strprintf substitutes
// strictly in order. A Profile captures which convention a string uses and
// which placeholders it carries; a translation is valid when its profile
// equals the source profile exactly.
package specifier

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTruncated reports a '%' at the very end of a string with no specifier
// character after it.
var ErrTruncated = errors.New("truncated format specifier at end of string")

// Profile is the placeholder signature of a string: an unordered set of
// positional specifiers and an ordered sequence of printf-style ones.
type Profile struct {
	// Numeric holds positional specifiers ('1'..'9'); order-independent.
	Numeric map[rune]bool
	// Other holds all remaining specifier characters in order of appearance.
	Other []rune
}

// Extract returns the raw specifier characters of s, left to right: for
// every '%' the immediately following character, with scanning resuming
// after it. "%%" therefore yields a '%' token. A trailing '%' with nothing
// after it returns ErrTruncated.
func Extract(s string) ([]rune, error) {
	runes := []rune(s)
	var tokens []rune
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			continue
		}
		if i+1 >= len(runes) {
			return nil, ErrTruncated
		}
		tokens = append(tokens, runes[i+1])
		i++
	}
	return tokens, nil
}

// Classify splits raw specifier tokens into a Profile. Digits 1-9 form the
// numeric set; everything else keeps its order in Other. When any numeric
// specifier is present the whole string is treated as Qt-formatted and
// Other is discarded: Qt only substitutes numeric placeholders, so in
// "(percentage: %1%)" the "%)"" is literal text, not a printf specifier.
func Classify(tokens []rune) Profile {
	p := Profile{Numeric: make(map[rune]bool)}
	for _, t := range tokens {
		if t >= '1' && t <= '9' {
			p.Numeric[t] = true
		} else {
			p.Other = append(p.Other, t)
		}
	}
	if len(p.Numeric) > 0 {
		p.Other = nil
	}
	return p
}

// ProfileOf extracts and classifies in one step.
func ProfileOf(s string) (Profile, error) {
	tokens, err := Extract(s)
	if err != nil {
		return Profile{}, err
	}
	return Classify(tokens), nil
}

// Equal reports whether two profiles match: set equality for the numeric
// part, exact sequence equality for the rest.
func (p Profile) Equal(q Profile) bool {
	if len(p.Numeric) != len(q.Numeric) || len(p.Other) != len(q.Other) {
		return false
	}
	for r := range p.Numeric {
		if !q.Numeric[r] {
			return false
		}
	}
	for i, r := range p.Other {
		if q.Other[i] != r {
			return false
		}
	}
	return true
}

// Empty reports whether the profile has no placeholders at all.
func (p Profile) Empty() bool {
	return len(p.Numeric) == 0 && len(p.Other) == 0
}

// mixed reports the authoring error of combining both conventions in one
// string. Valid for source strings only; translations are classified with
// the numeric-wins rule before this could ever trigger.
func (p Profile) mixed() bool {
	return len(p.Numeric) > 0 && len(p.Other) > 0
}

// Check validates a translated string against its source string. numerus
// marks plural-aware messages, which may legitimately drop a %n placeholder.
//
// The returned error is fatal: it means the source string itself is broken
// (truncated specifier, or mixing positional and printf conventions) and
// the source data must be fixed upstream. Translation-side problems are
// never errors; they surface as findings and valid=false, and the caller
// may try Repair.
func Check(source, translation string, numerus bool) (valid bool, findings []string, err error) {
	src, err := ProfileOf(source)
	if err != nil {
		return false, nil, fmt.Errorf("parsing source %q: %w", sanitize(source), err)
	}
	if src.mixed() {
		return false, nil, fmt.Errorf("source %q mixes positional and printf-style specifiers; fix the source string", sanitize(source))
	}

	trans, err := ProfileOf(translation)
	if err != nil {
		findings = append(findings, fmt.Sprintf("Parse error in translation for '%s': '%s'", sanitize(source), sanitize(translation)))
		return false, findings, nil
	}

	if src.Equal(trans) {
		return true, nil, nil
	}

	// Languages whose plural forms collapse may drop the %n placeholder
	// entirely, as long as no stray '%' remains in the translation.
	if numerus && len(src.Numeric) == 0 && len(src.Other) == 1 && src.Other[0] == 'n' &&
		trans.Empty() && !strings.Contains(translation, "%") {
		return true, nil, nil
	}

	findings = append(findings, fmt.Sprintf("Mismatch between '%s' and '%s'", sanitize(source), sanitize(translation)))
	return false, findings, nil
}

// sanitize flattens newlines so findings stay single-line.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
