package logger

import (
	"regexp"
	"strings"
)

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" → "jo***@example.com"
// Short local parts (≤2 chars) are fully masked: "ab@example.com" → "***@example.com"
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

// RedactNumber keeps only the last four characters of an identifier such
// as a national ID, card or phone number: "63-123456A12" → "***6A12".
func RedactNumber(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 4 {
		return "***"
	}
	return "***" + s[len(s)-4:]
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// numberKeys are field-name fragments whose values are treated as
// identifying numbers.
var numberKeys = []string{"nationalid", "identity", "card_number", "cardnumber", "mobile", "phone", "landline", "account"}

func redactPIIValue(key, val string) string {
	key = strings.ToLower(key)
	// Redact email fields
	if strings.Contains(key, "email") || strings.Contains(key, "recipient") {
		return RedactEmail(val)
	}
	compact := strings.ReplaceAll(key, "_", "")
	for _, k := range numberKeys {
		if strings.Contains(key, k) || strings.Contains(compact, strings.ReplaceAll(k, "_", "")) {
			return RedactNumber(val)
		}
	}
	// Redact any embedded emails in generic fields
	return emailRegex.ReplaceAllStringFunc(val, RedactEmail)
}
