package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	stddec "github.com/shopspring/decimal"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/internal/output"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatYen(stddec.NewFromInt(-98765)); got != "-¥98,765" {
		t.Fatalf("FormatYen = %q", got)
	}
	if got := output.FormatCompact(stddec.NewFromInt(123456789)); got != "1.23億円" {
		t.Fatalf("FormatCompact = %q", got)
	}
	if got := output.FormatCompact(stddec.NewFromInt(3500000)); got != "350万円" {
		t.Fatalf("FormatCompact = %q", got)
	}
}

func minimalReport() *domain.ForecastReport {
	return &domain.ForecastReport{
		GeneratedAt: time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC),
		Settings:    domain.DefaultSettings(),
		Baseline: &domain.Projection{
			Months:            []string{"2025-06"},
			NetWorth:          []stddec.Decimal{stddec.NewFromInt(0)},
			InvestmentBalance: []stddec.Decimal{stddec.NewFromInt(0)},
		},
	}
}

func TestGenerateReport_JSON_CSV(t *testing.T) {
	dir := t.TempDir()
	report := minimalReport()

	files, err := output.GenerateReport(report, "json", dir)
	if err != nil {
		t.Fatalf("GenerateReport json error: %v", err)
	}
	if want := filepath.Join(dir, "household_forecast_20250701_083000.json"); len(files) != 1 || files[0] != want {
		t.Fatalf("files = %v, want %s", files, want)
	}
	files, err = output.GenerateReport(report, "csv-detailed", dir)
	if err != nil {
		t.Fatalf("GenerateReport csv error: %v", err)
	}
	if !strings.HasSuffix(files[0], ".csv") {
		t.Fatalf("expected csv extension, got %s", files[0])
	}
}

func TestGenerateReport_All(t *testing.T) {
	dir := t.TempDir()
	files, err := output.GenerateReport(minimalReport(), "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			t.Fatalf("missing output %s: %v", f, err)
		}
	}
}

func TestGenerateReport_Unsupported(t *testing.T) {
	_, err := output.GenerateReport(minimalReport(), "xml", t.TempDir())
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
