// Package i18n resolves the user's locale and the notices shown for it.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported UI languages.
type Locale string

const (
	English    Locale = "en"
	Spanish    Locale = "es"
	French     Locale = "fr"
	German     Locale = "de"
	Italian    Locale = "it"
	Portuguese Locale = "pt"
	Japanese   Locale = "ja"
	Chinese    Locale = "zh"
)

// Default is used whenever nothing better matches.
const Default = English

var supported = []Locale{English, Spanish, French, German, Italian, Portuguese, Japanese, Chinese}

var labels = map[Locale]string{
	English:    "English",
	Spanish:    "Español",
	French:     "Français",
	German:     "Deutsch",
	Italian:    "Italiano",
	Portuguese: "Português",
	Japanese:   "日本語",
	Chinese:    "中文",
}

// matcher's first tag is the fallback for unmatched preferences.
var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = language.Make(string(l))
	}
	return tags
}

// Supported returns the supported locales, default first.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// Label returns the locale's name in its own language.
func (l Locale) Label() string {
	if label, ok := labels[l]; ok {
		return label
	}
	return string(l)
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	_, ok := labels[l]
	return ok
}

// Parse resolves a single tag such as "pt-BR" to a supported locale.
// The bool is false when the tag is malformed or has no supported match.
func Parse(value string) (Locale, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default, false
	}
	return match(tag)
}

// Match picks the best supported locale for the given preferences, in order.
func Match(prefs ...string) Locale {
	tags := make([]language.Tag, 0, len(prefs))
	for _, p := range prefs {
		if tag, err := language.Parse(strings.TrimSpace(p)); err == nil {
			tags = append(tags, tag)
		}
	}
	l, _ := match(tags...)
	return l
}

// FromAcceptLanguage resolves an Accept-Language header value.
func FromAcceptLanguage(header string) Locale {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return Default
	}
	l, _ := match(tags...)
	return l
}

func match(tags ...language.Tag) (Locale, bool) {
	if len(tags) == 0 {
		return Default, false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default, false
	}
	return supported[idx], true
}
