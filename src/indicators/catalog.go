package indicators

import (
	"painel/src/charts"
	"painel/src/timeseries"
	"sort"
	"time"
)

type Source string

const (
	BCB   Source = "bcb"
	SIDRA Source = "sidra"
)

type Panel string

const (
	Brasil  Panel = "brasil"
	Paraiba Panel = "paraiba"
)

// Aggregation applied to upstream points before they are stored.
type Aggregation string

const (
	NoAggregation Aggregation = ""
	MonthlyMean   Aggregation = "monthlyMean"
)

// Indicator is the declarative description of one dashboard series: where it
// comes from, how it is stored and how it is charted.
type Indicator struct {
	Key    string
	Label  string
	Unit   string
	Panel  Panel
	Source Source
	// Code is the SGS series number for BCB or the table path for SIDRA.
	Code        string
	Aggregation Aggregation
	// Since drops older upstream points. SinceExclusive makes the bound strict.
	Since          time.Time
	SinceExclusive bool
	// RecentDays restricts both the upstream request and the served series
	// to the days before the latest observation.
	RecentDays  int
	RefreshCron string
	Chart       charts.Spec
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Codes that are not fixed by the upstream APIs can be overridden from config.
const DefaultDivPubSeries = "15549"

// Catalog holds the indicators served by one process.
type Catalog struct {
	byKey map[string]Indicator
	order []string
}

// NewCatalog builds a catalog, applying code overrides by indicator key.
func NewCatalog(codeOverrides map[string]string) *Catalog {
	c := &Catalog{byKey: map[string]Indicator{}}
	for _, ind := range defaults() {
		if code, ok := codeOverrides[ind.Key]; ok && code != "" {
			ind.Code = code
		}
		ind.Chart.ID = ind.Key
		c.byKey[ind.Key] = ind
		c.order = append(c.order, ind.Key)
	}
	return c
}

func (c *Catalog) Lookup(key string) (Indicator, bool) {
	ind, ok := c.byKey[key]
	return ind, ok
}

// All returns every indicator in declaration order.
func (c *Catalog) All() []Indicator {
	all := make([]Indicator, 0, len(c.order))
	for _, key := range c.order {
		all = append(all, c.byKey[key])
	}
	return all
}

func (c *Catalog) ByPanel(panel Panel) []Indicator {
	var out []Indicator
	for _, ind := range c.All() {
		if ind.Panel == panel {
			out = append(out, ind)
		}
	}
	return out
}

func (c *Catalog) Panels() []Panel {
	seen := map[Panel]bool{}
	var panels []Panel
	for _, ind := range c.All() {
		if !seen[ind.Panel] {
			seen[ind.Panel] = true
			panels = append(panels, ind.Panel)
		}
	}
	sort.Slice(panels, func(i, j int) bool { return panels[i] < panels[j] })
	return panels
}

func defaults() []Indicator {
	return []Indicator{
		{
			Key: "pib_db", Label: "PIB do Brasil", Unit: "%", Panel: Brasil,
			Source: SIDRA, Code: "t/5932/n1/all/v/6561/p/all/c11255/90707/d/v6561%201",
			Since: date(2011, 10, 1), SinceExclusive: true,
			RefreshCron: "0 4 1 * *",
			Chart: charts.Spec{
				Title: "Brasil: Variação Trimestral do PIB", Type: charts.Bar,
				LabelMode: timeseries.Trimester, LookbackYears: 10,
				Palette: charts.SignedPalette{}, YAxisTitle: "(%)",
			},
		},
		{
			Key: "desocupacao", Label: "Taxa de Desocupação", Unit: "%", Panel: Brasil,
			Source: SIDRA, Code: "t/4099/n1/all/v/4099/p/all",
			Since: date(2011, 10, 1), SinceExclusive: true,
			RefreshCron: "0 4 1 * *",
			Chart: charts.Spec{
				Title: "Brasil: Taxa de Desocupação", Type: charts.Line,
				LabelMode: timeseries.Trimester, LookbackYears: 10,
				Palette: charts.Teal, YAxisTitle: "(%)",
			},
		},
		{
			Key: "ipca", Label: "IPCA do Brasil", Unit: "%", Panel: Brasil,
			Source: BCB, Code: "433",
			Since:       date(2012, 1, 1),
			RefreshCron: "15 3 1 * *",
			Chart: charts.Spec{
				Title: "Brasil: IPCA Mensal", Type: charts.Line,
				LabelMode: timeseries.Monthly, LookbackYears: 10,
				Palette: charts.SkyBlue,
			},
		},
		{
			Key: "selic", Label: "SELIC", Unit: "%", Panel: Brasil,
			Source: BCB, Code: "4390", Aggregation: MonthlyMean,
			Since:       date(2012, 1, 1),
			RefreshCron: "30 3 1 * *",
			Chart: charts.Spec{
				Title: "Brasil: Taxa SELIC Mensal", Type: charts.Line,
				LabelMode: timeseries.Monthly, LookbackYears: 15,
				Palette: charts.SkyBlue,
			},
		},
		{
			Key: "cambio", Label: "CAMBIO", Unit: "R$/US$", Panel: Brasil,
			Source: BCB, Code: "1",
			RecentDays:  30,
			RefreshCron: "0 3 1 * *",
			Chart: charts.Spec{
				Title: "Brasil: Taxa de Câmbio Livre - PTAX (venda)", Type: charts.Line,
				LabelMode: timeseries.Daily,
				Palette:   charts.SkyBlue,
			},
		},
		{
			Key: "pib_pb", Label: "PIB da Paraíba", Unit: "Milhões de Reais", Panel: Paraiba,
			Source: SIDRA, Code: "t/5938/n3/25/v/37/p/all",
			Since: date(2011, 1, 1), SinceExclusive: true,
			RefreshCron: "0 4 1 * *",
			Chart: charts.Spec{
				Title: "Paraíba: PIB a Preços Correntes", Type: charts.Bar,
				LabelMode: timeseries.YearOnly, LookbackYears: 20,
				Palette: charts.Teal,
			},
		},
		{
			Key: "desocupacao_pb", Label: "Taxa de Desocupação da Paraíba", Unit: "%", Panel: Paraiba,
			Source: SIDRA, Code: "t/4099/n3/25/v/4099/p/all",
			Since: date(2011, 10, 1), SinceExclusive: true,
			RefreshCron: "0 4 1 * *",
			Chart: charts.Spec{
				Title: "Paraíba: Taxa de Desocupação", Type: charts.Line,
				LabelMode: timeseries.Trimester, LookbackYears: 10,
				Palette: charts.SteelBlue, YAxisTitle: "(%)",
			},
		},
		{
			Key: "bcpb", Label: "Saldo da Balança Comercial da Paraíba", Unit: "Milhões de Reais", Panel: Paraiba,
			Source: BCB, Code: "13352",
			Since:       date(2002, 1, 1),
			RefreshCron: "0 4 1 * *",
			Chart: charts.Spec{
				Title: "Paraíba: Saldo da Balança Comercial", Type: charts.Line,
				LabelMode: timeseries.Monthly, LookbackYears: 20,
				Palette: charts.SignedPalette{},
			},
		},
		{
			Key: "divpub", Label: "Dívida Pública do Governo do Estado da Paraíba", Unit: "Milhões de Reais", Panel: Paraiba,
			Source: BCB, Code: DefaultDivPubSeries,
			RefreshCron: "0 4 1 * *",
			Chart: charts.Spec{
				Title: "Paraíba: Dívida Líquida do Governo Estadual", Type: charts.Bar,
				LabelMode: timeseries.YearMonth, LookbackYears: 20,
				Palette: charts.SignedPalette{},
			},
		},
	}
}

// Keep reports whether an upstream observation dated t passes the Since bound.
func (ind Indicator) Keep(t time.Time) bool {
	if ind.Since.IsZero() {
		return true
	}
	if ind.SinceExclusive {
		return t.After(ind.Since)
	}
	return !t.Before(ind.Since)
}
