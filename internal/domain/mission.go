package domain

import (
	"fmt"
	"strings"
	"time"
)

// Agency is one of the temp agencies a mission can be worked for.
type Agency string

const (
	AgencyAdecco       Agency = "adecco"
	AgencyAppelMedical Agency = "appel medical"
)

// Agencies lists the recognized agencies in keyboard display order.
var Agencies = []Agency{AgencyAdecco, AgencyAppelMedical}

// ParseAgency matches free text against the recognized agency names,
// ignoring case and surrounding whitespace.
func ParseAgency(s string) (Agency, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Agencies {
		if normalized == string(a) {
			return a, true
		}
	}
	return "", false
}

// Layouts for the user-facing input formats and the stored forms.
const (
	inputDateLayout = "02 01 2006"
	KeyDateLayout   = "2006/01/02"
	inputTimeLayout = "15 04"
	ClockLayout     = "15:04"
	ExcelDateLayout = "02/01/2006"
)

// Mission is one recorded work assignment. Date doubles as the primary
// key: at most one mission per calendar day.
type Mission struct {
	Agency    Agency
	Date      string // KeyDateLayout
	Location  string
	StartTime string // ClockLayout
	EndTime   string // ClockLayout
}

// Key returns the primary key value under which the mission is stored.
func (m Mission) Key() string { return m.Date }

// ParseDate converts "day month year" user input ("05 03 2024") into the
// stored key form ("2024/03/05"). Single-digit day and month are
// accepted, 4-digit year required.
func ParseDate(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", fmt.Errorf("parsing mission date: %w", err)
	}
	return t.Format(KeyDateLayout), nil
}

// IsDate reports whether s is acceptable input for ParseDate.
func IsDate(s string) bool {
	_, err := parseDate(s)
	return err == nil
}

func parseDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("expected 'day month year', got %q", s)
	}
	// Normalize "5 3 2024" to "05 03 2024" so the fixed layout accepts it.
	for i, f := range fields {
		if len(f) == 1 {
			fields[i] = "0" + f
		}
	}
	return time.Parse(inputDateLayout, strings.Join(fields, " "))
}

// ParseClock converts "hour minute" user input ("9 5") into "09:05".
// Single-digit components are accepted, 24-hour clock.
func ParseClock(s string) (string, error) {
	t, err := parseClock(s)
	if err != nil {
		return "", fmt.Errorf("parsing mission time: %w", err)
	}
	return t.Format(ClockLayout), nil
}

// IsClock reports whether s is acceptable input for ParseClock.
func IsClock(s string) bool {
	_, err := parseClock(s)
	return err == nil
}

func parseClock(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("expected 'hour minute', got %q", s)
	}
	// Normalize "9 5" to "09 05" so the fixed layout accepts it.
	for i, f := range fields {
		if len(f) == 1 {
			fields[i] = "0" + f
		}
	}
	return time.Parse(inputTimeLayout, strings.Join(fields, " "))
}

// KeyToTime parses a stored date key back into a time.Time.
func KeyToTime(key string) (time.Time, error) {
	t, err := time.Parse(KeyDateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", key, err)
	}
	return t, nil
}
