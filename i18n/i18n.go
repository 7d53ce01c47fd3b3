// Package i18n localizes tskit's own user-facing strings.
//
// A translation tool should eat its own dog food: the T() and N() helpers
// wrap gotext over locale files embedded in the binary. Init() picks the
// language from the environment once at startup.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the tool's own translations, laid out as
// locales/{lang}/LC_MESSAGES/tskit.po.
//
//go:embed all:locales
var locales embed.FS

const domain = "tskit"

var locale *gotext.Locale

// Init loads translations for lang, or for the language detected from
// LANGUAGE/LC_ALL/LC_MESSAGES/LANG when lang is empty. Call once at
// startup, before any T or N call.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a string, returning it unchanged when no translation exists.
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// N translates with plural forms selected by n.
func N(singular, plural string, n int) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n)
}

// detectLanguage follows the GNU gettext environment variable priority.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
