package sidra_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"painel/src/clients/sidra"
	"painel/src/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quarterly = `[
	{"NC":"Nível Territorial (Código)","D3C":"Trimestre (Código)","D3N":"Trimestre","V":"Valor"},
	{"NC":"1","D3C":"202303","D3N":"3º trimestre 2023","V":"0,1"},
	{"NC":"1","D3C":"202301","D3N":"1º trimestre 2023","V":"1,4"},
	{"NC":"1","D3C":"202302","D3N":"2º trimestre 2023","V":"..."},
	{"NC":"1","D3C":"202304","D3N":"4º trimestre 2023","V":"-0,2"}
]`

const yearly = `[
	{"D3C":"Ano (Código)","D3N":"Ano","V":"Valor"},
	{"D3C":"2020","D3N":"2020","V":"70292"},
	{"D3C":"2021","D3N":"2021","V":"X"}
]`

func newClient(t *testing.T, body string, status int) *sidra.SIDRAServiceClient {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("formato"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	client, err := sidra.NewClient(config.ClientConfig{BaseURL: ts.URL, Timeout: "1s", Attempts: 1, Backoff: "1ms"})
	require.NoError(t, err)
	return client
}

func TestNewClientRejectsBadDurations(t *testing.T) {
	_, err := sidra.NewClient(config.ClientConfig{Timeout: "-1s"})
	assert.ErrorContains(t, err, "must not be negative")

	client, err := sidra.NewClient(config.ClientConfig{BaseURL: "http://localhost"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", client.BaseURL)
}

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestGetSeries(t *testing.T) {
	t.Run("quarterly table", func(t *testing.T) {
		client := newClient(t, quarterly, http.StatusOK)
		points, err := client.GetSeries(context.Background(), "t/5932/n1/all/v/6561/p/all")
		require.NoError(t, err)

		assert.Equal(t, []sidra.Point{
			{Date: date(2023, time.January), Value: 1.4},
			{Date: date(2023, time.July), Value: 0.1},
			{Date: date(2023, time.October), Value: -0.2},
		}, points)
	})

	t.Run("yearly table", func(t *testing.T) {
		client := newClient(t, yearly, http.StatusOK)
		points, err := client.GetSeries(context.Background(), "t/5938/n3/25/v/37/p/all")
		require.NoError(t, err)
		assert.Equal(t, []sidra.Point{{Date: date(2020, time.January), Value: 70292}}, points)
	})

	t.Run("empty answer has no header", func(t *testing.T) {
		client := newClient(t, `[]`, http.StatusOK)
		_, err := client.GetSeries(context.Background(), "t/1")
		assert.ErrorIs(t, err, sidra.ErrMissingHeader)
	})

	t.Run("upstream error", func(t *testing.T) {
		client := newClient(t, `erro`, http.StatusBadRequest)
		_, err := client.GetTable(context.Background(), "t/1")
		assert.Error(t, err)
	})
}

func TestRowPeriod(t *testing.T) {
	tests := []struct {
		name string
		row  sidra.Row
		want time.Time
		ok   bool
	}{
		{"first quarter", sidra.Row{"Trimestre (Código)": "201201"}, date(2012, time.January), true},
		{"fourth quarter", sidra.Row{"Trimestre (Código)": "201204"}, date(2012, time.October), true},
		{"bad quarter", sidra.Row{"Trimestre (Código)": "201205"}, time.Time{}, false},
		{"year code", sidra.Row{"Ano (Código)": "2019"}, date(2019, time.January), true},
		{"year name", sidra.Row{"Ano": "2018"}, date(2018, time.January), true},
		{"no period", sidra.Row{"Valor": "1"}, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.row.Period()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
