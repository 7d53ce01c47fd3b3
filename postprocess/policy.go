package postprocess

import "regexp"

// addressPattern matches cryptocurrency-address-like content: a version
// indicator (1, 3 or bc1) followed by 30 or more alphanumerics. Kept
// deliberately loose; a false positive only costs a re-translation.
var addressPattern = regexp.MustCompile(`([13]|bc1)[a-zA-Z0-9]{30,}`)

// ContainsPaymentAddress reports whether a translated string carries
// something that looks like a payment address. Translators must never
// inject addresses into UI strings, whatever the rest of the string
// looks like.
func ContainsPaymentAddress(s string) bool {
	return addressPattern.MatchString(s)
}
