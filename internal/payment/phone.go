package payment

import (
	"regexp"
	"strings"
)

var msisdnRegexp = regexp.MustCompile(`^254[17][0-9]{8}$`)

// NormalizePhone rewrites a Kenyan mobile number into the 2547XXXXXXXX or
// 2541XXXXXXXX form the gateway expects. It accepts local (07..., 01...),
// international (+254..., 254...) and bare subscriber (7..., 1...) forms,
// ignoring spaces and dashes.
func NormalizePhone(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	cleaned = strings.TrimPrefix(cleaned, "+")

	switch {
	case len(cleaned) == 10 && cleaned[0] == '0':
		cleaned = "254" + cleaned[1:]
	case len(cleaned) == 9:
		cleaned = "254" + cleaned
	}
	if !msisdnRegexp.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}
