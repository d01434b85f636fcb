package sidra

import (
	"painel/src/utils"
	"strconv"
	"time"
)

const (
	quarterCodeColumn = "Trimestre (Código)"
	yearCodeColumn    = "Ano (Código)"
	yearColumn        = "Ano"
	valueColumn       = "Valor"
)

// Row is one SIDRA data row keyed by the column names of the header row.
type Row map[string]string

// Period returns the first day of the row's period: the first month of the
// quarter for quarterly tables, January for yearly ones.
func (r Row) Period() (time.Time, bool) {
	if code := r[quarterCodeColumn]; code != "" {
		if len(code) != 6 {
			return time.Time{}, false
		}
		year, err := strconv.Atoi(code[:4])
		if err != nil {
			return time.Time{}, false
		}
		quarter, err := strconv.Atoi(code[4:])
		if err != nil || quarter < 1 || quarter > 4 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
	}
	for _, column := range []string{yearCodeColumn, yearColumn} {
		if code := r[column]; code != "" {
			if len(code) != 4 {
				return time.Time{}, false
			}
			year, err := strconv.Atoi(code)
			if err != nil {
				return time.Time{}, false
			}
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Value parses Valor. Placeholders for missing or suppressed data report false.
func (r Row) Value() (float64, bool) {
	return utils.ParseDecimal(r[valueColumn])
}
