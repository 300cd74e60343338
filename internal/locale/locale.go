// Package locale resolves the language a report is written in.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Default is used when neither an explicit locale nor the environment
// names a usable language.
const Default = "en"

var envVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Language returns the base language of a locale such as "ja_JP.UTF-8" or
// "pt-BR". ok is false when the locale cannot be parsed.
func Language(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	return base.String(), true
}

// Resolve returns the report language. An explicit locale wins, then the
// POSIX locale environment variables, then Default.
func Resolve(explicit string) string {
	return resolve(explicit, os.Getenv)
}

func resolve(explicit string, getenv func(string) string) string {
	if lang, ok := Language(explicit); ok {
		return lang
	}
	for _, name := range envVars {
		if lang, ok := Language(getenv(name)); ok {
			return lang
		}
	}
	return Default
}
