// Package redact scrubs sensitive fragments from strings before they reach
// logs or error responses: connection strings, bearer tokens, SQL text,
// filesystem paths, and the contact emails attached to calendar events.
package redact

import "regexp"

// Redaction placeholders.
const (
	PlaceholderCredential = "[REDACTED_CREDENTIAL]"
	PlaceholderKey        = "[REDACTED_KEY]"
	PlaceholderPath       = "[REDACTED_PATH]"
	PlaceholderJWT        = "[REDACTED_JWT]"
	PlaceholderEmail      = "[REDACTED_EMAIL]"
	PlaceholderSQL        = "[REDACTED_SQL]"
	PlaceholderHost       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Ordering matters: credentials embedded in URLs must be caught before the
// host rule rewrites the surrounding text.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|redis)://[^@\s]+@`), PlaceholderCredential},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), PlaceholderCredential},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), PlaceholderKey},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), PlaceholderJWT},
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"]+)?`), PlaceholderSQL},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), PlaceholderEmail},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PlaceholderPath},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), PlaceholderHost},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's message.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
