package pkg

import (
	"regexp"
	"strings"
)

const DefaultSanitizeMaxLen = 500

var (
	scriptBlockRegex       = regexp.MustCompile(`(?i)<\s*script[^>]*>[\s\S]*?<\s*/\s*script\s*>`)
	doubleQuotedEventRegex = regexp.MustCompile(`(?i)on[a-z]+\s*=\s*"[^"]*"`)
	singleQuotedEventRegex = regexp.MustCompile(`(?i)on[a-z]+\s*=\s*'[^']*'`)
	jsSchemeRegex          = regexp.MustCompile(`(?i)javascript:\s*`)
	angleBracketsRegex     = regexp.MustCompile(`[<>]`)
	controlCharsRegex      = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// SanitizeText strips markup that could execute in a browser and
// truncates the result to maxLen runes. Tabs and newlines survive.
func SanitizeText(input string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSanitizeMaxLen
	}

	s := strings.TrimSpace(input)
	s = scriptBlockRegex.ReplaceAllString(s, "")
	s = doubleQuotedEventRegex.ReplaceAllString(s, "")
	s = singleQuotedEventRegex.ReplaceAllString(s, "")
	s = jsSchemeRegex.ReplaceAllString(s, "")
	s = angleBracketsRegex.ReplaceAllString(s, "")
	s = controlCharsRegex.ReplaceAllString(s, "")

	if runes := []rune(s); len(runes) > maxLen {
		s = string(runes[:maxLen])
	}
	return s
}
