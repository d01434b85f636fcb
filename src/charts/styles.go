package charts

// Style is the colour pair applied to one data point.
type Style struct {
	Border     string `json:"border"`
	Background string `json:"background"`
}

// Palette maps a value to its style. Implementations must be pure.
type Palette interface {
	StyleFor(value float64) Style
}

// SignedPalette colours non-negative values blue and negative values red.
type SignedPalette struct{}

func (SignedPalette) StyleFor(value float64) Style {
	if value >= 0 {
		return Style{Border: "rgb(135,206,250)", Background: "rgba(135,206,250, 0.2)"}
	}
	return Style{Border: "rgb(255,0,0)", Background: "rgba(255,0,0, 0.2)"}
}

// SolidPalette uses the same style for every value.
type SolidPalette Style

func (p SolidPalette) StyleFor(float64) Style {
	return Style(p)
}

var (
	Teal      = SolidPalette{Border: "rgb(75, 192, 192)", Background: "rgba(75, 192, 192, 0.2)"}
	SkyBlue   = SolidPalette{Border: "rgb(135,206,250)", Background: "rgba(135,206,250, 0.2)"}
	SteelBlue = SolidPalette{Border: "rgb(70, 130, 180)", Background: "rgba(70, 130, 180, 0.2)"}
)

// seriesColors is a palette of distinct colours for multi-series pages.
var seriesColors = []string{
	"#ffa366", // Light Orange
	"#ff8080", // Light Red
	"#80b3ff", // Light Blue
	"#a3d977", // Light Green
	"#c285ff", // Light Purple
	"#80e6d4", // Light Teal
	"#ffb366", // Medium Orange
	"#ff6666", // Medium Red
	"#80b366", // Medium Green
	"#e680ff", // Light Magenta
	"#808080", // Medium Gray
	"#b3a3ff", // Light Slate Blue
	"#80d4cc", // Light Sea Green
}

// SeriesColor returns a colour from the series palette, cycling when the
// index exceeds its size.
func SeriesColor(index int) string {
	if index < 0 {
		index = -index
	}
	return seriesColors[index%len(seriesColors)]
}

// Colors computes the border and background colour of every value.
func Colors(p Palette, values []float64) (borders, backgrounds []string) {
	borders = make([]string, len(values))
	backgrounds = make([]string, len(values))
	for i, v := range values {
		s := p.StyleFor(v)
		borders[i], backgrounds[i] = s.Border, s.Background
	}
	return borders, backgrounds
}
