// Package calfmt renders calendar values for display in one language.
//
// All calendar wording in the application goes through a Formatter so the
// language is chosen once, from configuration, instead of being inherited
// from the process environment.
package calfmt

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rewired-gh/linkedlens/internal/cyclic"
)

// Formatter renders calendar values.
type Formatter interface {
	// Language is the matched supported language.
	Language() language.Tag
	// Month renders a month period, e.g. "mars 2024".
	Month(t time.Time) string
	// MonthName renders a month without year, capitalized.
	MonthName(m time.Month) string
	// Day renders a calendar date.
	Day(t time.Time) string
	// Week renders the week starting at t.
	Week(t time.Time) string
	// DateTime renders a date with hours and minutes.
	DateTime(t time.Time) string
	// Weekday renders a capitalized day name.
	Weekday(d time.Weekday) string
	// Band renders a part of the day.
	Band(b cyclic.Band) string
	// Duration renders a duration as days, hours and minutes.
	Duration(d time.Duration) string
	// Number renders an integer with locale grouping.
	Number(n int) string
	// Percent renders a percentage with one decimal.
	Percent(p float64) string
}

// Supported lists the languages with a dedicated vocabulary.
var Supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(Supported)

// New returns the formatter best matching tag. Unsupported tags get English.
func New(tag language.Tag) Formatter {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	lang := Supported[idx]

	v := vocabularies[lang]
	return &formatter{
		tag:     lang,
		vocab:   v,
		title:   cases.Title(lang),
		printer: message.NewPrinter(lang),
	}
}

type vocabulary struct {
	months   [12]string
	weekdays [7]string // Sunday first, as time.Weekday
	bands    [4]string // capitalized as displayed
	day      func(f *formatter, t time.Time) string
	week     string // format taking the rendered day
	dateTime string
	units    [3]string // days, hours, minutes
}

var vocabularies = map[language.Tag]vocabulary{
	language.English: {
		months: [12]string{
			"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
		},
		weekdays: [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
		bands:    [4]string{"Morning", "Afternoon", "Evening", "Night"},
		day: func(f *formatter, t time.Time) string {
			return fmt.Sprintf("%s %d, %d", f.MonthName(t.Month()), t.Day(), t.Year())
		},
		week:     "week of %s",
		dateTime: "2006-01-02 15:04",
		units:    [3]string{"d", "h", "min"},
	},
	language.French: {
		months: [12]string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		weekdays: [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		bands:    [4]string{"Matin", "Après-midi", "Soir", "Nuit"},
		day: func(f *formatter, t time.Time) string {
			return fmt.Sprintf("%d %s %d", t.Day(), f.vocab.months[t.Month()-1], t.Year())
		},
		week:     "semaine du %s",
		dateTime: "02/01/2006 15:04",
		units:    [3]string{"j", "h", "min"},
	},
}

type formatter struct {
	tag     language.Tag
	vocab   vocabulary
	title   cases.Caser
	printer *message.Printer
}

func (f *formatter) Language() language.Tag { return f.tag }

func (f *formatter) Month(t time.Time) string {
	name := f.vocab.months[t.Month()-1]
	if f.tag == language.English {
		name = f.title.String(name)
	}
	return fmt.Sprintf("%s %d", name, t.Year())
}

func (f *formatter) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return f.title.String(f.vocab.months[m-1])
}

func (f *formatter) Day(t time.Time) string {
	return f.vocab.day(f, t)
}

func (f *formatter) Week(t time.Time) string {
	return fmt.Sprintf(f.vocab.week, f.Day(t))
}

func (f *formatter) DateTime(t time.Time) string {
	return t.Format(f.vocab.dateTime)
}

func (f *formatter) Weekday(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return f.title.String(f.vocab.weekdays[d])
}

func (f *formatter) Band(b cyclic.Band) string {
	if b < cyclic.Morning || b > cyclic.Night {
		return b.String()
	}
	return f.vocab.bands[b]
}

func (f *formatter) Duration(d time.Duration) string {
	if d < 0 {
		return "-" + f.Duration(-d)
	}
	d = d.Round(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	u := f.vocab.units
	switch {
	case days > 0:
		return fmt.Sprintf("%d %s %d %s %d %s", days, u[0], hours, u[1], minutes, u[2])
	case hours > 0:
		return fmt.Sprintf("%d %s %d %s", hours, u[1], minutes, u[2])
	default:
		return fmt.Sprintf("%d %s", minutes, u[2])
	}
}

func (f *formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

func (f *formatter) Percent(p float64) string {
	return f.printer.Sprintf("%.1f %%", p)
}
