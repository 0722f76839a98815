package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// ErrUnsupportedFormat is returned for format names no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.ForecastReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ForecastReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ForecastReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
// The timestamp is the report's generation time, so reruns with a fixed clock
// produce the same name.
func WriteFormatted(f Formatter, report *domain.ForecastReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("household_forecast_%s.%s", stamp.Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	PDFFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f
		}
	}
	// try normalized name
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-series":      "csv",
	"html-report":     "html",
	"json-pretty":     "json",
	"chart":           "pdf",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// namedProjections lists the baseline followed by the comparisons sorted by name,
// skipping empty projections.
func namedProjections(report *domain.ForecastReport) []domain.ScenarioProjection {
	var out []domain.ScenarioProjection
	if report == nil {
		return out
	}
	if report.Baseline != nil && report.Baseline.Len() > 0 {
		out = append(out, domain.ScenarioProjection{Name: "Baseline", Projection: report.Baseline})
	}
	return append(out, sortedComparisons(report)...)
}

func sortedComparisons(report *domain.ForecastReport) []domain.ScenarioProjection {
	out := make([]domain.ScenarioProjection, 0, len(report.Comparisons))
	for _, c := range report.Comparisons {
		if c.Projection != nil && c.Projection.Len() > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
