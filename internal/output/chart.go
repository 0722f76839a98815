package output

import (
	"math"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// chartSeries is one net-worth line, in yen.
type chartSeries struct {
	Name   string
	Values []float64
}

// chartPalette cycles for scenario lines; the baseline always takes the first colour.
var chartPalette = [][3]int{
	{0, 51, 102},
	{204, 85, 0},
	{34, 139, 34},
	{153, 50, 204},
	{178, 34, 34},
	{0, 139, 139},
}

func paletteColor(i int) [3]int { return chartPalette[i%len(chartPalette)] }

func netWorthSeries(report *domain.ForecastReport) []chartSeries {
	var out []chartSeries
	for _, sc := range namedProjections(report) {
		values := make([]float64, len(sc.Projection.NetWorth))
		for i, v := range sc.Projection.NetWorth {
			values[i] = v.InexactFloat64()
		}
		out = append(out, chartSeries{Name: sc.Name, Values: values})
	}
	return out
}

// seriesBounds returns the value range of all series, always including zero so
// the crash line is visible.
func seriesBounds(series []chartSeries) (lo, hi float64) {
	for _, s := range series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// plotPoint maps point i of n with value v into a w x h box whose top-left is (x0, y0).
func plotPoint(i, n int, v, lo, hi, x0, y0, w, h float64) (float64, float64) {
	x := x0
	if n > 1 {
		x = x0 + w*float64(i)/float64(n-1)
	}
	y := y0 + h - h*(v-lo)/(hi-lo)
	return x, y
}
