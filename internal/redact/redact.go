// Package redact scrubs error text before it reaches logs or clients.
//
// It targets what the post stores and the HTTP layer can actually emit:
// Postgres and Redis connection URLs, DSN passwords, SQL from driver
// errors, dial addresses, migration file paths and panic stacks.
package redact

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Applied in order. The stack rule must precede the path rule.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|rediss?|unix)://[^@\s/]+@`),
		replacement: "${1}://[REDACTED_CREDENTIAL]@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd)\s*[=:]\s*'?[^\s'&]+'?`),
		replacement: "${1}=[REDACTED_CREDENTIAL]",
	},
	{
		pattern:     regexp.MustCompile(`(?s)goroutine \d+ \[.*$`),
		replacement: "[REDACTED_STACK]",
	},
	{
		pattern:     regexp.MustCompile(`\b(?:SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[^;]*?\b(?:FROM|INTO|SET|TABLE)\b[^;\n]*`),
		replacement: "[REDACTED_SQL]",
	},
	{
		pattern:     regexp.MustCompile(`\b(?:\d{1,3}(?:\.\d{1,3}){3}|localhost|(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,}):\d{1,5}\b`),
		replacement: "[REDACTED_ADDR]",
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: "[REDACTED_PATH]",
	},
}

// String returns s with every rule applied.
func String(s string) string {
	for _, r := range rules {
		if s == "" {
			break
		}
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// Error is String(err.Error()), or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
