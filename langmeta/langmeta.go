// Package langmeta resolves native display names for the language codes
// found in TS file names and language attributes, for status output.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// overrides covers codes the tag machinery cannot parse or renders poorly.
// Transifex still ships a few legacy script suffixes in this form.
var overrides = map[string]string{
	"sr@latin":    "srpski (latinica)",
	"ca@valencia": "valencià",
}

// Name returns the native display name for a language code, e.g. "ru" →
// "русский", "pt_BR" → "português (Brasil)". Unknown codes come back
// unchanged so status output never loses the identifier.
func Name(code string) string {
	if n, ok := overrides[code]; ok {
		return n
	}

	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	if n := display.Self.Name(tag); n != "" {
		return n
	}
	return code
}

// FromFileName extracts the language code from a TS file name such as
// "bitcoin_pt_BR.ts": everything between the first underscore and the
// extension. Files without an underscore use the whole base name.
func FromFileName(name string) string {
	base := strings.TrimSuffix(name, ".orig")
	base = strings.TrimSuffix(base, ".ts")
	if idx := strings.Index(base, "_"); idx >= 0 {
		return base[idx+1:]
	}
	return base
}
