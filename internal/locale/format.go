// Package locale renders dates and times the way a given locale writes them.
//
// Locale strings are BCP 47 tags ("en-US", "de_DE", "pt-BR"). They are
// matched against a fixed set of supported locales; anything that does not
// parse or does not match is written the en-US way. Month and weekday names
// come from github.com/goodsign/monday.
package locale

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

type layout struct {
	tag   language.Tag
	names monday.Locale
	date  string
	clock string
	// lower writes weekday and month names in lower case, as these
	// languages do mid-sentence.
	lower bool
}

// The first entry is the fallback.
var layouts = []layout{
	{language.AmericanEnglish, monday.Locale("en_US"), "Monday, January 2, 2006", "3:04 PM", false},
	{language.BritishEnglish, monday.Locale("en_GB"), "Monday 2 January 2006", "15:04", false},
	{language.MustParse("de-DE"), monday.Locale("de_DE"), "Monday, 2. January 2006", "15:04", false},
	{language.MustParse("fr-FR"), monday.Locale("fr_FR"), "Monday 2 January 2006", "15:04", true},
	{language.MustParse("es-ES"), monday.Locale("es_ES"), "Monday, 2 de January de 2006", "15:04", true},
	{language.MustParse("it-IT"), monday.Locale("it_IT"), "Monday 2 January 2006", "15:04", true},
	{language.MustParse("nl-NL"), monday.Locale("nl_NL"), "Monday 2 January 2006", "15:04", true},
	{language.MustParse("pt-BR"), monday.Locale("pt_BR"), "Monday, 2 de January de 2006", "15:04", true},
	{language.MustParse("pt-PT"), monday.Locale("pt_PT"), "Monday, 2 de January de 2006", "15:04", true},
	{language.MustParse("sv-SE"), monday.Locale("sv_SE"), "Monday 2 January 2006", "15:04", true},
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(layouts))
	for i, l := range layouts {
		tags[i] = l.tag
	}
	return tags
}

// Supported lists the locale tags with dedicated formatting rules.
func Supported() []string {
	out := make([]string, len(layouts))
	for i, l := range layouts {
		out[i] = l.tag.String()
	}
	return out
}

// Formatter writes dates and times for a locale string.
type Formatter struct{}

// NewFormatter returns the default Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Date writes the weekday, month, day and year of t.
func (f *Formatter) Date(t time.Time, locale string) string {
	l := lookup(locale)
	out := monday.Format(t, l.date, l.names)
	if l.lower {
		out = strings.ToLower(out)
	}
	return out
}

// Time writes the hour and minute of t.
func (f *Formatter) Time(t time.Time, locale string) string {
	l := lookup(locale)
	return monday.Format(t, l.clock, l.names)
}

// Resolve reports which supported locale a locale string is written as.
func Resolve(locale string) string {
	return lookup(locale).tag.String()
}

func lookup(locale string) layout {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return layouts[0]
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(layouts) {
		return layouts[0]
	}
	return layouts[index]
}
