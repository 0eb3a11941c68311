package speech

import (
	"fmt"
	"regexp"
	"strings"
)

// Language selects the narration text rules and the synthesis voice
type Language string

const (
	Russian Language = "ru"
	French  Language = "fr"
)

// Voice identifies a synthesis voice
type Voice struct {
	Locale string
	Name   string
}

var voices = map[Language]Voice{
	Russian: {Locale: "ru-RU", Name: "Maxim"},
	French:  {Locale: "fr-FR", Name: "Celine"},
}

var levelPattern = regexp.MustCompile(`(\d+)/([+-]?\d+)`)

// ParseLanguage validates a language code
func ParseLanguage(code string) (Language, error) {
	lang := Language(code)
	if _, ok := voices[lang]; !ok {
		return "", fmt.Errorf("unsupported narration language %q", code)
	}
	return lang, nil
}

// Voice returns the synthesis voice for l
func (l Language) Voice() Voice {
	return voices[l]
}

// Prepare turns a composed status into text suitable for speech synthesis
func Prepare(text string, lang Language) string {
	text = strings.TrimRight(text, "\n")

	unit := "${1} сантиметрах, ${2} сантиметрах"
	if lang == French {
		text = Transliterate(text)
		unit = "${1} centimètre ${2} centimètre"
	}

	text = strings.ReplaceAll(text, "\n", ". ")
	return levelPattern.ReplaceAllString(text, unit)
}
