package waste

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/multierr"
)

// Entry is one country's cleaned figures.
type Entry struct {
	Country   string  `json:"-"`
	Waste     int64   `json:"waste"` // tonnes per year
	MWI       float64 `json:"mwi"`   // mismanaged waste index, percent
	Archetype string  `json:"archetype"`
}

// Clean parses raw values into numbers. Records that do not parse are
// left out and reported in the returned error; the rest are still
// returned, ordered by country name.
func Clean(raw map[string]RawRecord) ([]Entry, error) {
	countries := make([]string, 0, len(raw))
	for c := range raw {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	var errs error
	out := make([]Entry, 0, len(raw))
	for _, country := range countries {
		e, err := cleanRecord(country, raw[country])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("skipped %s: %w", country, err))
			continue
		}
		out = append(out, e)
	}
	return out, errs
}

func cleanRecord(country string, r RawRecord) (Entry, error) {
	digits := strings.Map(func(c rune) rune {
		if unicode.IsDigit(c) {
			return c
		}
		return -1
	}, r.Waste)
	waste, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("waste %q: %w", r.Waste, err)
	}

	mwi, err := strconv.ParseFloat(strings.TrimSpace(strings.Trim(r.MWI, "%")), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("mwi %q: %w", r.MWI, err)
	}

	return Entry{
		Country:   country,
		Waste:     waste,
		MWI:       mwi,
		Archetype: r.Archetype,
	}, nil
}

// ByCountry indexes entries by name, the shape the cleaned file uses.
func ByCountry(entries []Entry) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for _, e := range entries {
		out[e.Country] = e
	}
	return out
}
