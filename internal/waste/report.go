// Package waste turns the mismanaged-plastic report into gallery lineups.
//
// The report is a text dump where each country block ends with a fixed
// sentence. Values sit at fixed line offsets from that sentence.
package waste

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Marker is the sentence that anchors a country block.
const Marker = "The expected mismanaged waste in 2024"

// Line offsets from the marker.
const (
	wasteOffset     = 2
	mwiOffset       = -13
	archetypeOffset = -1
	countryOffset   = -22
)

// RawRecord holds one country's values as they appear in the report.
type RawRecord struct {
	Waste     string `json:"waste"`
	MWI       string `json:"mwi"`
	Archetype string `json:"archetype"`
}

// Extract scans a report and returns the raw values per country. When a
// country appears twice the first block wins.
func Extract(r io.Reader) (map[string]RawRecord, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	out := make(map[string]RawRecord)
	for i, line := range lines {
		if !strings.Contains(line, Marker) {
			continue
		}
		if i+countryOffset < 0 || i+wasteOffset >= len(lines) {
			continue
		}
		country := lines[i+countryOffset]
		if _, seen := out[country]; seen {
			continue
		}
		out[country] = RawRecord{
			Waste:     lines[i+wasteOffset],
			MWI:       lines[i+mwiOffset],
			Archetype: lines[i+archetypeOffset],
		}
	}
	return out, nil
}

// ExtractFile runs Extract on a file.
func ExtractFile(path string) (map[string]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Extract(f)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadRaw loads the output of Extract back from JSON.
func ReadRaw(r io.Reader) (map[string]RawRecord, error) {
	var out map[string]RawRecord
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding raw records: %w", err)
	}
	return out, nil
}

// ReadEntries loads cleaned entries from JSON.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var byCountry map[string]Entry
	if err := json.NewDecoder(r).Decode(&byCountry); err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}
	out := make([]Entry, 0, len(byCountry))
	for country, e := range byCountry {
		e.Country = country
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out, nil
}

// InvertCodes turns a country-to-code table into code-to-country.
// When several countries share a code, the alphabetically first one wins.
func InvertCodes(countryToCode map[string]string) map[string]string {
	countries := make([]string, 0, len(countryToCode))
	for country := range countryToCode {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	out := make(map[string]string, len(countryToCode))
	for _, country := range countries {
		code := countryToCode[country]
		if _, taken := out[code]; taken {
			continue
		}
		out[code] = country
	}
	return out
}
