package format

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// Default layouts mirror what the web dashboard shows for the es-ES locale.
const (
	DefaultDateLayout     = "2/1/2006"
	DefaultDateTimeLayout = "2/1/2006, 15:04:05"
)

// inputLayouts are tried in order when parsing API timestamps.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Formatter turns raw API values into display strings. The zero value is not
// usable; build one with Default or New.
type Formatter struct {
	Location       *time.Location
	Locale         monday.Locale
	DateLayout     string
	DateTimeLayout string
}

// Default returns a Formatter using the local time zone and es_ES locale.
func Default() *Formatter {
	return New(monday.LocaleEsES, time.Local)
}

// New returns a Formatter for the given locale and location. Unknown locales
// fall back to en_US.
func New(locale monday.Locale, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	if !isSupportedLocale(locale) {
		locale = monday.LocaleEnUS
	}
	return &Formatter{
		Location:       loc,
		Locale:         locale,
		DateLayout:     DefaultDateLayout,
		DateTimeLayout: DefaultDateTimeLayout,
	}
}

// FormatDate renders a timestamp as a localized date. Values that cannot be
// parsed are returned unchanged.
func (f *Formatter) FormatDate(raw string) string {
	return f.format(raw, f.DateLayout)
}

// FormatDateTime renders a timestamp as a localized date and time. Values that
// cannot be parsed are returned unchanged.
func (f *Formatter) FormatDateTime(raw string) string {
	return f.format(raw, f.DateTimeLayout)
}

func (f *Formatter) format(raw, layout string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return monday.Format(t.In(f.Location), layout, f.Locale)
}

// ParseTimestamp parses the timestamp shapes the inventory API emits.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isSupportedLocale(locale monday.Locale) bool {
	for _, l := range monday.ListLocales() {
		if l == locale {
			return true
		}
	}
	return false
}
