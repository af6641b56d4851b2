package locale

import "strings"

const (
	LanguageEnglish    = "en"
	LanguageIndonesian = "id"
	LanguageJapanese   = "jp"
)

// NormalizeLanguage maps loose user input (query values, Accept-Language
// fragments, display codes) onto one of the site's language codes.
// Unknown input normalizes to the empty string.
func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	if strings.HasPrefix(trimmed, "id") || strings.HasPrefix(trimmed, "in") {
		return LanguageIndonesian
	}
	if strings.HasPrefix(trimmed, "jp") || strings.HasPrefix(trimmed, "ja") {
		return LanguageJapanese
	}
	return ""
}

// LanguageFromAcceptLanguage picks a site language from the request header.
func LanguageFromAcceptLanguage(header string) string {
	trimmed := strings.ToLower(strings.TrimSpace(header))
	if trimmed == "" {
		return ""
	}
	for _, part := range strings.Split(trimmed, ",") {
		code := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if normalized := NormalizeLanguage(code); normalized != "" {
			return normalized
		}
	}
	return ""
}

// DisplayCode renders a language code the way the site shows it (upper case).
func DisplayCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
