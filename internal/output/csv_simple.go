package output

import (
	"bytes"
	"encoding/csv"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// CSVSummarizer writes the net-worth and investment series, one row per scenario and month.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ForecastReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Month", "NetWorth", "InvestmentBalance", "Negative"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range namedProjections(report) {
		p := sc.Projection
		for i := 0; i < p.Len(); i++ {
			row := []string{
				sc.Name,
				p.Months[i],
				yenString(p.NetWorth[i]),
				yenString(p.InvestmentBalance[i]),
				boolToString(p.NetWorth[i].IsNegative()),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
