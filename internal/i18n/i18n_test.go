package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Locale
		wantOK bool
	}{
		{"en", English, true},
		{"fr", French, true},
		{"fr-CA", French, true},
		{"pt-BR", Portuguese, true},
		{"de-AT", German, true},
		{"ja-JP", Japanese, true},
		{"ko", Default, false},
		{"", Default, false},
		{"not a tag!", Default, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestMatch_UsesFirstSupportedPreference(t *testing.T) {
	assert.Equal(t, Italian, Match("ko", "it", "es"))
	assert.Equal(t, Spanish, Match("es-MX"))
	assert.Equal(t, Default, Match())
	assert.Equal(t, Default, Match("!!", "ko"))
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, Japanese, FromAcceptLanguage("ko-KR,ko;q=0.9,ja;q=0.8"))
	assert.Equal(t, German, FromAcceptLanguage("de-DE,de;q=0.9,en;q=0.5"))
	assert.Equal(t, Default, FromAcceptLanguage(""))
}

func TestLocaleHelpers(t *testing.T) {
	assert.Len(t, Supported(), 8)
	assert.Equal(t, English, Supported()[0])
	assert.Equal(t, "日本語", Japanese.Label())
	assert.Equal(t, "xx", Locale("xx").Label())
	assert.True(t, Chinese.Valid())
	assert.False(t, Locale("xx").Valid())
	assert.Equal(t, "pt", Portuguese.Tag().String())
}

func TestFor_EveryBundleIsComplete(t *testing.T) {
	for _, l := range Supported() {
		m := bundles[l]
		v := reflect.ValueOf(m)
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(), "%s is missing %s", l, v.Type().Field(i).Name)
		}
	}
}

func TestFor_Fallbacks(t *testing.T) {
	assert.Equal(t, "Moment sealed forever", For(English).Sealed)
	assert.Equal(t, "Momento sellado para siempre", For(Spanish).Sealed)
	assert.Equal(t, For(English), For(Locale("xx")))

	partial := withFallback(Messages{Sealed: "Scellé"}, For(English))
	assert.Equal(t, "Scellé", partial.Sealed)
	assert.Equal(t, "Username taken. Try another.", partial.UsernameTaken)
	assert.Equal(t, "Saved locally (Offline Mode)", partial.SavedOffline)
}
