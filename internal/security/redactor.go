package security

import (
	"regexp"
)

var (
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
	// user:pass@ in URLs
	userinfoPattern = regexp.MustCompile(`(?i)([a-z][a-z0-9+.\-]*://)[^/\s@]+@`)
	// ?api_key=... / &key=... / &token=...
	queryKeyPattern = regexp.MustCompile(`(?i)([?&](?:api_key|apikey|key|token|access_token)=)[^&\s"]+`)
)

// Redactor implements ports.Redactor with built-in patterns.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor creates a new redactor with default patterns.
func NewRedactor() *Redactor {
	patterns := []*regexp.Regexp{
		// OpenAI-style keys, including sk-proj- and sk-or-v1- prefixes
		regexp.MustCompile(`sk-[a-zA-Z0-9_\-]{20,}`),
		// Groq keys
		regexp.MustCompile(`gsk_[a-zA-Z0-9]{20,}`),
		// Authorization headers
		regexp.MustCompile(`(?i)(?:authorization|auth|token):\s*Bearer\s+[a-zA-Z0-9._\-]+`),
		regexp.MustCompile(`(?i)Bearer\s+[a-zA-Z0-9._\-]{16,}`),
		// JSON API key patterns
		regexp.MustCompile(`"(?:api_key|apiKey|API_KEY|OpenAILikeAPIKey)":\s*"[^"]+"`),
		// Google API keys
		regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
	}
	return &Redactor{patterns: patterns}
}

// Redact removes sensitive patterns from text.
func (r *Redactor) Redact(text string) string {
	result := userinfoPattern.ReplaceAllString(text, "${1}[REDACTED]@")
	result = queryKeyPattern.ReplaceAllString(result, "${1}[REDACTED]")
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}

// RedactLog is more aggressive, also removing IP addresses and emails.
func (r *Redactor) RedactLog(text string) string {
	result := r.Redact(text)
	result = ipPattern.ReplaceAllString(result, "[IP]")
	result = emailPattern.ReplaceAllString(result, "[EMAIL]")
	return result
}

// Contains checks if text contains any sensitive pattern.
func (r *Redactor) Contains(text string) bool {
	if userinfoPattern.MatchString(text) || queryKeyPattern.MatchString(text) {
		return true
	}
	for _, pattern := range r.patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
