package timeseries

import (
	"fmt"
	"strings"
)

// LabelMode selects how dates are rendered as chart labels.
type LabelMode string

const (
	YearOnly  LabelMode = "yearOnly"
	Trimester LabelMode = "trimester"
	Monthly   LabelMode = "monthly"
	YearMonth LabelMode = "yearMonth"
	Daily     LabelMode = "daily"
)

var monthAbbreviations = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ParseLabelMode accepts the mode names used by the dashboard, case-insensitively.
// Unknown names are reported as not ok; FormatLabels itself treats them as daily.
func ParseLabelMode(s string) (LabelMode, bool) {
	for _, m := range []LabelMode{YearOnly, Trimester, Monthly, YearMonth, Daily} {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return Daily, false
}

// FormatLabels maps every date to a label for the given mode. The output has
// the same length and order as dates. Entries that cannot be sliced into a
// year (and month, where the mode needs one) are passed through unchanged.
func FormatLabels(dates []string, mode LabelMode) []string {
	labels := make([]string, len(dates))
	for i, date := range dates {
		labels[i] = formatLabel(date, mode)
	}
	return labels
}

func formatLabel(date string, mode LabelMode) string {
	switch mode {
	case YearOnly:
		year, ok := yearOf(date)
		if !ok {
			return date
		}
		return year
	case Trimester:
		year, month, ok := yearAndMonthOf(date)
		if !ok {
			return date
		}
		return fmt.Sprintf("%s T%d", year, (month+2)/3)
	case Monthly, YearMonth:
		year, month, ok := yearAndMonthOf(date)
		if !ok {
			return date
		}
		return fmt.Sprintf("%s - %s", year, monthAbbreviations[month-1])
	default:
		return date
	}
}

func yearOf(date string) (string, bool) {
	if len(date) < 4 || !allDigits(date[:4]) {
		return "", false
	}
	return date[:4], true
}

// yearAndMonthOf reads the month from the fixed positions of a YYYY-MM-DD string.
func yearAndMonthOf(date string) (string, int, bool) {
	year, ok := yearOf(date)
	if !ok || len(date) < 7 || !allDigits(date[5:7]) {
		return "", 0, false
	}
	month := int(date[5]-'0')*10 + int(date[6]-'0')
	if month < 1 || month > 12 {
		return "", 0, false
	}
	return year, month, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
