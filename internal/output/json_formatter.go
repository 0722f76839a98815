package output

import (
	json "github.com/goccy/go-json"
	"github.com/hhforecast/household-forecast/internal/domain"
)

// JSONFormatter serializes the forecast report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ForecastReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
