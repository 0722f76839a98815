package output

import (
	"fmt"
	"strings"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// extensionFor maps a canonical formatter name to its file extension.
func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case strings.HasPrefix(name, "console"):
		return "txt"
	default:
		return name
	}
}

// GenerateReport writes the report in format to a timestamped file in dir and returns
// the files written. "all" writes the detailed console, detailed CSV and PDF outputs.
func GenerateReport(report *domain.ForecastReport, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		name, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	switch NormalizeFormatName(format) {
	case "all":
		var written []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, PDFFormatter{}} {
			name, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	default:
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
}
