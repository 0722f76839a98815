package output

import (
	"bytes"
	"encoding/csv"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// CSVDetailedExporter provides the raw monthly cash flow behind every projection.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ForecastReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Month", "HeadAge", "Dependents", "Income", "Severance", "Living", "Education",
		"Recurring", "Loan", "Event", "Outflow", "Contribution", "Profit", "NetWorth", "InvestmentBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range namedProjections(report) {
		for _, m := range sc.Projection.Details {
			row := []string{
				sc.Name,
				m.Month,
				intToString(m.HeadAge),
				intToString(m.Dependents),
				yenString(m.Income),
				yenString(m.Severance),
				yenString(m.Living),
				yenString(m.Education),
				yenString(m.Recurring),
				yenString(m.Loan),
				yenString(m.Event),
				yenString(m.Outflow()),
				yenString(m.Contribution),
				yenString(m.Profit),
				yenString(m.NetWorth),
				yenString(m.InvestmentBalance),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
