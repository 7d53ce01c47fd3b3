package specifier

import "strings"

// fixups rewrites the most common translator typos around placeholders:
// a stray space between marker and argument, the argument placed before
// the marker, or a '$' typed instead of '%'. Applied strictly in order,
// each replacement over the whole string.
var fixups = [][2]string{
	{"% 1", "%1"},
	{"1%", "%1"},
	{"$1", "%1"},
	{"2%", "%2"},
	{"% s", "%s"},
	{"s%", "%s"},
	{"$s", "%s"},
	{"n%", "%n"},
	{"$n", "%n"},
	{"% n", "%n"},
	{"% d", "%d"},
}

// FixString applies the literal fixup table to s.
func FixString(s string) string {
	for _, f := range fixups {
		s = strings.ReplaceAll(s, f[0], f[1])
	}
	return s
}

// padPlaceholders inserts a space before each '%' for readability, unless
// the string already starts with '%' or any placeholder is already preceded
// by a space, parenthesis or quote.
func padPlaceholders(s string) string {
	if s == "" || s[0] == '%' {
		return s
	}
	for _, pat := range []string{" %", "(%", "'%", `"%`} {
		if strings.Contains(s, pat) {
			return s
		}
	}
	return strings.ReplaceAll(s, "%", " %")
}

// A repairStep proposes a rewritten candidate. apply reports whether the
// step was applicable at all; finish, when set, post-processes an accepted
// candidate. Candidates carry forward: a step's rewrite stays in effect as
// input to the next step even when its own recheck fails.
type repairStep struct {
	apply  func(source, candidate string) (string, bool)
	finish func(string) string
}

// repairSteps is the ordered repair chain. The marker-swap and plural-swap
// steps are deliberately narrow, hand-tuned matches; do not generalize
// them without re-checking real Transifex output.
var repairSteps = []repairStep{
	// Literal typo fixups; on success, pad placeholders with spaces.
	{
		apply: func(_, candidate string) (string, bool) {
			return FixString(candidate), true
		},
		finish: padPlaceholders,
	},
	// Translator typed '%' where the source uses the mnemonic marker '&'.
	{
		apply: func(source, candidate string) (string, bool) {
			if strings.Contains(candidate, "%") && strings.Contains(source, "&") {
				return strings.ReplaceAll(candidate, "%", "&"), true
			}
			return candidate, false
		},
	},
	// Translator used positional %1 where the source has the plural count %n.
	{
		apply: func(source, candidate string) (string, bool) {
			if strings.Contains(candidate, "%1") && strings.Contains(source, "%n") {
				return strings.ReplaceAll(candidate, "%1", "%n"), true
			}
			return candidate, false
		},
	},
}

// Repair attempts to rewrite an invalid translation so that its specifier
// profile matches the source. It runs the repair chain in order and stops
// at the first candidate whose profile equals the source profile. Returns
// the repaired string and true on success, or the last candidate and false
// when the translation is irreparable.
func Repair(source, translation string) (string, bool) {
	src, err := ProfileOf(source)
	if err != nil {
		return translation, false
	}

	cand := translation
	for _, step := range repairSteps {
		next, applied := step.apply(source, cand)
		if !applied {
			continue
		}
		cand = next
		if p, err := ProfileOf(cand); err == nil && p.Equal(src) {
			if step.finish != nil {
				cand = step.finish(cand)
			}
			return cand, true
		}
	}
	return cand, false
}
