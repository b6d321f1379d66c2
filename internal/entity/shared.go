package entity

import "strings"

// Language represents supported language codes using ISO-style abbreviations.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageEnglish     Language = "en"
	LanguageSpanish     Language = "es"
	LanguageFrench      Language = "fr"
	LanguageGerman      Language = "de"
	LanguageItalian     Language = "it"
	LanguagePortuguese  Language = "pt"
	LanguageRussian     Language = "ru"
	LanguageJapanese    Language = "ja"
	LanguageKorean      Language = "ko"
	LanguageGreek       Language = "el"
)

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// ParseLanguage lowercases an arbitrary code into a Language. Unknown codes
// are kept as-is: the core only uses the language as a namespace component,
// so an unrecognized code must not collapse into a shared default.
func ParseLanguage(code string) Language {
	return Language(strings.ToLower(strings.TrimSpace(code)))
}

// NormalizeWordToken lowercases and trims a term for use as a lookup key.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
