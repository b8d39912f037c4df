package listing

import "strings"

// NormalizePhone reduces a phone identifier to a country-code-prefixed
// digit string. WhatsApp JIDs ("573001112233@c.us") and formatted
// numbers are accepted; Colombian mobile numbers missing the 57 prefix
// get it added.
func NormalizePhone(phone string) string {
	if at := strings.Index(phone, "@"); at >= 0 {
		phone = phone[:at]
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()

	if strings.HasPrefix(clean, "57") {
		return clean
	}
	return "57" + clean
}

// ValidPhone reports whether the number normalizes to a plausible
// Colombian mobile identifier.
func ValidPhone(phone string) bool {
	clean := NormalizePhone(phone)
	return strings.HasPrefix(clean, "57") && len(clean) >= 12 && len(clean) <= 13
}
