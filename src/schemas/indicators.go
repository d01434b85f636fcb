package schemas

import (
	"errors"
	"fmt"
	"painel/src/timeseries"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IndicatorResponse describes one catalogue entry and its stored state.
type IndicatorResponse struct {
	Key           string     `json:"key"`
	Label         string     `json:"label"`
	Unit          string     `json:"unit"`
	Panel         string     `json:"panel"`
	Source        string     `json:"source"`
	Code          string     `json:"code"`
	ChartTitle    string     `json:"chartTitle"`
	ChartType     string     `json:"chartType"`
	LabelMode     string     `json:"labelMode"`
	LookbackYears int        `json:"lookbackYears"`
	RefreshCron   string     `json:"refreshCron"`
	Count         int        `json:"count"`
	First         *time.Time `json:"first,omitempty"`
	Last          *time.Time `json:"last,omitempty"`
	LastRefresh   *time.Time `json:"lastRefresh,omitempty"`
}

// SeriesErrorResponse keeps the series shape so dashboards can render an
// empty chart next to the error.
type SeriesErrorResponse struct {
	Error  string    `json:"error"`
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
	Label  string    `json:"label"`
	Unit   string    `json:"unit"`
}

type RefreshResponse struct {
	Indicator string `json:"indicator"`
	Rows      int    `json:"rows"`
}

type RefreshAllResponse struct {
	Status string `json:"status"`
}

// ChartQuery holds the optional chart overrides read from the query string.
type ChartQuery struct {
	Mode  string `validate:"omitempty,oneof=yearOnly trimester monthly yearMonth daily"`
	Years *int   `validate:"omitempty,min=0,max=100"`
}

// ParseChartQuery reads mode and years. Mode names are matched without case.
func ParseChartQuery(mode, years string) (*ChartQuery, error) {
	q := &ChartQuery{}
	if mode != "" {
		parsed, ok := timeseries.ParseLabelMode(mode)
		if !ok {
			return nil, fmt.Errorf("mode must be one of: yearOnly, trimester, monthly, yearMonth, daily")
		}
		q.Mode = string(parsed)
	}
	if years != "" {
		n, err := strconv.Atoi(years)
		if err != nil {
			return nil, fmt.Errorf("years must be an integer")
		}
		q.Years = &n
	}
	if err := validate.Struct(q); err != nil {
		return nil, validationMessage(err)
	}
	return q, nil
}

// LabelMode returns the requested mode, if any.
func (q ChartQuery) LabelMode() (timeseries.LabelMode, bool) {
	if q.Mode == "" {
		return "", false
	}
	return timeseries.LabelMode(q.Mode), true
}

func validationMessage(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
