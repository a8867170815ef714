package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const cmPerInch = 2.54

var (
	// "Arizona Cardinals / 1st / 5th pick / 2011" -> 5
	pickPattern = regexp.MustCompile(`(\d*)\w{2} pick`)

	// "6-2" -> 6 feet, 2 inches
	heightPattern = regexp.MustCompile(`(\d)-(\d{1,2})`)
)

// Pick extracts the overall pick number from a draft descriptor.
// Undrafted players and malformed descriptors return false.
func Pick(descriptor string) (int, bool) {
	matches := pickPattern.FindStringSubmatch(descriptor)
	if matches == nil || matches[1] == "" {
		return 0, false
	}
	pick, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	return pick, true
}

// HeightCM converts a "feet-inches" descriptor into centimeters
func HeightCM(descriptor string) (float64, bool) {
	matches := heightPattern.FindStringSubmatch(descriptor)
	if matches == nil {
		return 0, false
	}
	feet, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	inches, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, false
	}
	return float64(feet*12+inches) * cmPerInch, true
}

// Number parses a numeric table cell. Blank or non-numeric cells return nil.
func Number(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}
