package docskill

import "strings"

// GenericCodeTag is the language tag used when detection fails.
const GenericCodeTag = "code"

// DetectLanguage guesses the programming language of a code snippet by
// pattern-matching characteristic keywords. It is a best-effort
// classifier, not a parser; unrecognized code gets GenericCodeTag.
func DetectLanguage(code string) string {
	switch {
	case strings.Contains(code, "def ") && strings.Contains(code, ":"):
		return "python"
	case strings.Contains(code, "function") || strings.Contains(code, "const ") || strings.Contains(code, "let "):
		return "javascript"
	case strings.Contains(code, "class ") && strings.Contains(code, "{"):
		if strings.Contains(code, "public ") || strings.Contains(code, "private ") {
			return "java"
		}
		return "cpp"
	case strings.Contains(code, "func ") && strings.Contains(code, "{"):
		return "go"
	case strings.Contains(code, "<?php"):
		return "php"
	case strings.Contains(code, "fn ") && strings.Contains(code, "->"):
		return "rust"
	}
	return GenericCodeTag
}
