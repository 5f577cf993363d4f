// Package locale holds the user-visible string tables and resolves the
// display language from the environment. English is the fallback for
// unknown languages and untranslated keys.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Fallback is used when no supported language matches.
const Fallback = "en"

var supported = []language.Tag{
	language.English,
	language.French,
	language.German,
}

var matcher = language.NewMatcher(supported)

// Supported lists the language codes with a string table.
func Supported() []string {
	codes := make([]string, len(supported))
	for i, tag := range supported {
		base, _ := tag.Base()
		codes[i] = base.String()
	}
	return codes
}

// T translates key into lang. Missing translations fall back to
// English; a key absent from every table is returned unchanged.
func T(lang, key string) string {
	if table, ok := tables[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := tables[Fallback][key]; ok {
		return s
	}
	return key
}

// Translator binds a language. The zero value translates to English.
type Translator struct {
	lang string
}

// New creates a Translator for lang; an empty or unsupported lang uses
// the detected environment language.
func New(lang string) *Translator {
	if _, ok := tables[lang]; !ok {
		lang = Detect()
	}
	return &Translator{lang: lang}
}

// Lang returns the bound language code.
func (t *Translator) Lang() string {
	if t.lang == "" {
		return Fallback
	}
	return t.lang
}

// T translates key into the bound language.
func (t *Translator) T(key string) string {
	return T(t.Lang(), key)
}

// Func returns the translator as a plain lookup function.
func (t *Translator) Func() func(key string) string {
	return t.T
}

// Detect resolves the display language from the locale environment
// variables, in the usual precedence order.
func Detect() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(name)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if lang, ok := match(value); ok {
			return lang
		}
	}
	return Fallback
}

// match maps an environment locale value like "fr_FR.UTF-8" onto a
// supported language code.
func match(value string) (string, bool) {
	// Strip the codeset and modifier, normalize the separator.
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	if i := strings.IndexByte(value, '@'); i >= 0 {
		value = value[:i]
	}
	value = strings.ReplaceAll(value, "_", "-")

	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	matched, _, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	base, _ := matched.Base()
	code := base.String()
	if _, ok := tables[code]; !ok {
		return "", false
	}
	return code, true
}
