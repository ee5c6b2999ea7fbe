// Package hijri builds weekday-aligned Hijri month grids on top of an opaque
// Gregorian-to-Hijri converter, and carries the static catalog of Islamic
// events that annotate those grids.
//
// The grid logic never does calendar arithmetic of its own. Month boundaries
// are found by probing the converter one civil day at a time and watching for
// the month name to change, so a grid is exactly as correct as its converter.
package hijri

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Month is a canonical Hijri month, 1 (Muharram) through 12 (Dhul-Hijjah).
type Month int

// Canonical Hijri months.
const (
	MonthUnknown Month = -1

	Muharram        Month = 1
	Safar           Month = 2
	RabiAlAwwal     Month = 3
	RabiAlThani     Month = 4
	JumadaAlUla     Month = 5
	JumadaAlAkhirah Month = 6
	Rajab           Month = 7
	Shaban          Month = 8
	Ramadan         Month = 9
	Shawwal         Month = 10
	DhulQadah       Month = 11
	DhulHijjah      Month = 12
)

// monthNames are the canonical English spellings, indexed by Month.
var monthNames = [...]string{
	"",
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Awwal",
	"Jumada al-Thani",
	"Rajab",
	"Shaban",
	"Ramadan",
	"Shawwal",
	"Dhul-Qadah",
	"Dhul-Hijjah",
}

// String returns the canonical English name, or "Unknown".
func (m Month) String() string {
	if !m.Valid() {
		return "Unknown"
	}
	return monthNames[m]
}

// Valid reports whether m is one of the twelve Hijri months.
func (m Month) Valid() bool {
	return m >= Muharram && m <= DhulHijjah
}

// Next returns the month after m, wrapping Dhul-Hijjah to Muharram.
func (m Month) Next() Month {
	if !m.Valid() {
		return MonthUnknown
	}
	return m%12 + 1
}

// monthAliases lists every spelling we accept, already folded (see fold).
// Sources: ICU "islamic-umalqura" English names ("Rabiʻ I", "Dhuʻl-Qiʻdah"),
// Al Adhan transliterations ("Rabīʿ al-awwal", "Jumādá al-ūlá",
// "Dhū al-Qaʿdah") and common South/Southeast Asian romanizations.
var monthAliases = map[Month][]string{
	Muharram: {
		"muharram", "al muharram", "muharram ul haram", "muharram al haram", "moharram",
	},
	Safar: {
		"safar", "safar al muzaffar", "saffar", "safar ul muzaffar",
	},
	RabiAlAwwal: {
		"rabi i", "rabi al awwal", "rabi ul awwal", "rabi al awal", "rabia al awwal",
		"rabi al ula", "rabee al awwal", "rabiul awal",
	},
	RabiAlThani: {
		"rabi ii", "rabi al thani", "rabi ul thani", "rabi al akhir", "rabi ul akhir",
		"rabi al sani", "rabi us sani", "rabi ath thani", "rabia al thani",
		"rabee al thani", "rabiul akhir",
	},
	JumadaAlUla: {
		"jumada i", "jumada al ula", "jumada al awwal", "jumada ul awwal", "jumada al oula",
		"jumada al awal", "jamadi ul awwal", "jumadil awal",
	},
	JumadaAlAkhirah: {
		"jumada ii", "jumada al akhirah", "jumada al akhira", "jumada al thani",
		"jumada ul akhir", "jumada al ukhra", "jumada al akhir", "jamadi ul akhir",
		"jumadil akhir",
	},
	Rajab: {
		"rajab", "rajab al murajjab",
	},
	Shaban: {
		"shaban", "shaaban", "sha aban", "shaban al muazzam", "syaban",
	},
	Ramadan: {
		"ramadan", "ramadhan", "ramazan", "ramzan", "ramadan al mubarak",
	},
	Shawwal: {
		"shawwal", "shawal", "syawal", "shawwal al mukarram",
	},
	DhulQadah: {
		"dhul qidah", "dhul qadah", "dhu al qadah", "dhu al qidah", "dhu l qidah",
		"dhu l qadah", "dhul qaadah", "dhu al qaadah", "zul qadah", "zulqaidah",
		"dhul qiddah", "dhu al qiddah", "dhulqadah",
	},
	DhulHijjah: {
		"dhul hijjah", "dhu al hijjah", "dhu l hijjah", "dhul hijja", "dhu al hijja",
		"zul hijjah", "zulhijjah", "dhulhijjah",
	},
}

// aliasIndex maps a folded alias to its month; built once in init.
var aliasIndex map[string]Month

func init() {
	aliasIndex = make(map[string]Month)
	for m, aliases := range monthAliases {
		for _, a := range aliases {
			aliasIndex[a] = m
		}
	}
}

// ParseMonth resolves a converter-supplied month name to its canonical Month.
//
// The name is folded first (diacritics and ayn/hamza marks dropped, case and
// separators normalized). An exact alias hit wins. Otherwise the name is
// matched against aliases by whole-token containment in either direction;
// forward hits pick the longest alias, reverse hits must agree on a single
// month. Anything else is MonthUnknown, never a guess.
func ParseMonth(name string) Month {
	f := fold(name)
	if f == "" {
		return MonthUnknown
	}
	if m, ok := aliasIndex[f]; ok {
		return m
	}

	padded := " " + f + " "

	best, bestLen, tied := MonthUnknown, 0, false
	for alias, m := range aliasIndex {
		if !strings.Contains(padded, " "+alias+" ") {
			continue
		}
		switch {
		case len(alias) > bestLen:
			best, bestLen, tied = m, len(alias), false
		case len(alias) == bestLen && m != best:
			tied = true
		}
	}
	if tied {
		return MonthUnknown
	}
	if best != MonthUnknown {
		return best
	}

	// A bare fragment like "rabi" or "thani" names more than one month.
	found := MonthUnknown
	for alias, m := range aliasIndex {
		if !strings.Contains(" "+alias+" ", padded) {
			continue
		}
		if found != MonthUnknown && found != m {
			return MonthUnknown
		}
		found = m
	}
	return found
}

// marks are apostrophe-like letters used for ayn and hamza in transliterations.
var marks = runes.Predicate(func(r rune) bool {
	switch r {
	case '\'', '`', 'ʿ', 'ʻ', 'ʾ', 'ʼ', '‘', '’', 'ʽ':
		return true
	}
	return false
})

// fold reduces a month name to lower-case ASCII-ish words separated by single
// spaces: "Dhuʻl-Qiʻdah" -> "dhul qidah", "Jumādá al-ūlá" -> "jumada al ula".
func fold(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(marks), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
