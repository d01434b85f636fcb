package sidra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"painel/src/config"
	"painel/src/utils/requests"
	"sort"
	"strings"
	"time"
)

var ErrMissingHeader = errors.New("sidra response has no header row")

type Point struct {
	Date  time.Time
	Value float64
}

type SIDRAServiceClientI interface {
	GetTable(ctx context.Context, path string) ([]Row, error)
	GetSeries(ctx context.Context, path string) ([]Point, error)
}

// SIDRAServiceClient reads tables from the IBGE SIDRA values API.
type SIDRAServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

func NewClient(cfg config.ClientConfig) (*SIDRAServiceClient, error) {
	timeout, backoff, err := cfg.Durations()
	if err != nil {
		return nil, fmt.Errorf("sidra client: %w", err)
	}
	return &SIDRAServiceClient{
		API: requests.NewExternalAPIService(
			requests.WithTimeout(timeout),
			requests.WithRetry(cfg.Attempts, backoff),
		),
		BaseURL: cfg.BaseURL,
	}, nil
}

// GetTable fetches path (e.g. "t/4099/n1/all/v/4099/p/all") and renames each
// data row's keys with the names found in the leading header row.
func (c *SIDRAServiceClient) GetTable(ctx context.Context, path string) ([]Row, error) {
	endpoint := fmt.Sprintf("%s/values/%s", c.BaseURL, strings.TrimPrefix(path, "/"))
	if strings.Contains(endpoint, "?") {
		endpoint += "&formato=json"
	} else {
		endpoint += "?formato=json"
	}

	body, err := c.API.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("sidra table %s: %w", path, err)
	}

	var raw []map[string]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("sidra table %s: decoding response: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sidra table %s: %w", path, ErrMissingHeader)
	}

	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, r := range raw[1:] {
		row := make(Row, len(r))
		for key, value := range r {
			name, ok := header[key]
			if !ok {
				name = key
			}
			row[name] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GetSeries returns the dated values of a single-variable table, skipping rows
// whose period or value cannot be read, sorted by date.
func (c *SIDRAServiceClient) GetSeries(ctx context.Context, path string) ([]Point, error) {
	rows, err := c.GetTable(ctx, path)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		date, ok := row.Period()
		if !ok {
			continue
		}
		value, ok := row.Value()
		if !ok {
			continue
		}
		points = append(points, Point{Date: date, Value: value})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
