package bcb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"painel/src/config"
	"painel/src/utils"
	"painel/src/utils/requests"
	"sort"
	"time"
)

type BCBServiceClientI interface {
	GetSeries(ctx context.Context, code string, start, end *time.Time) ([]Point, error)
}

// BCBServiceClient reads series from the Banco Central SGS API.
type BCBServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

func NewClient(cfg config.ClientConfig) (*BCBServiceClient, error) {
	timeout, backoff, err := cfg.Durations()
	if err != nil {
		return nil, fmt.Errorf("bcb client: %w", err)
	}
	return &BCBServiceClient{
		API: requests.NewExternalAPIService(
			requests.WithTimeout(timeout),
			requests.WithRetry(cfg.Attempts, backoff),
		),
		BaseURL: cfg.BaseURL,
	}, nil
}

// GetSeries fetches SGS series code, optionally bounded by start and end.
// Points with a missing or non numeric value are dropped and the result is
// sorted by date.
func (c *BCBServiceClient) GetSeries(ctx context.Context, code string, start, end *time.Time) ([]Point, error) {
	endpoint := fmt.Sprintf("%s/dados/serie/bcdata.sgs.%s/dados", c.BaseURL, code)

	params := url.Values{}
	params.Add("formato", "json")
	if start != nil {
		params.Add("dataInicial", start.Format(utils.ShortSlashDateLayout))
	}
	if end != nil {
		params.Add("dataFinal", end.Format(utils.ShortSlashDateLayout))
	}

	body, err := c.API.Get(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("bcb series %s: %w", code, err)
	}

	var raw []RawPoint
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("bcb series %s: decoding response: %w", code, err)
	}

	points := make([]Point, 0, len(raw))
	for _, r := range raw {
		date, err := time.Parse(utils.ShortSlashDateLayout, r.Data)
		if err != nil {
			continue
		}
		value, ok := utils.ParseDecimal(r.Valor)
		if !ok {
			continue
		}
		points = append(points, Point{Date: date, Value: value})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
