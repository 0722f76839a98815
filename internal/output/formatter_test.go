package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// buildProjection makes a 12-month projection from 2025-01 whose net worth moves by step each month.
func buildProjection(step int64) *domain.Projection {
	start := dateutil.MustParseYearMonth("2025-01")
	p := &domain.Projection{}
	for i := 0; i <= 12; i++ {
		month := dateutil.FormatYearMonth(dateutil.AddMonths(start, i))
		nw := decimal.NewFromInt(1000000 + step*int64(i))
		inv := decimal.NewFromInt(30000 * int64(i))
		p.Months = append(p.Months, month)
		p.NetWorth = append(p.NetWorth, nw)
		p.InvestmentBalance = append(p.InvestmentBalance, inv)
		if i == 0 {
			continue
		}
		if nw.IsNegative() && p.CrashMonth == nil {
			crash := month
			p.CrashMonth = &crash
		}
		p.Details = append(p.Details, domain.MonthlyCashFlow{
			Month:             month,
			Index:             i,
			HeadAge:           45,
			Dependents:        1,
			Income:            decimal.NewFromInt(500000),
			Living:            decimal.NewFromInt(400000),
			Contribution:      decimal.NewFromInt(30000),
			NetWorth:          nw,
			InvestmentBalance: inv,
		})
	}
	p.Breakdown = domain.Breakdown{
		Living:     decimal.NewFromInt(4800000),
		Investment: decimal.NewFromInt(360000),
	}
	return p
}

func buildTestReport() *domain.ForecastReport {
	core := decimal.NewFromInt(150000)
	return &domain.ForecastReport{
		GeneratedAt: time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
		Settings:    domain.DefaultSettings(),
		CoreBalance: &core,
		Baseline:    buildProjection(100000),
		Comparisons: []domain.ScenarioProjection{
			{ScenarioID: "b", Name: "B - Car loan", Projection: buildProjection(-100000)},
			{ScenarioID: "a", Name: "A - Frugal", Projection: buildProjection(150000)},
		},
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"Core balance: ¥150,000 / month",
		"Negative=2025-12",
		"Recommended: A - Frugal (Δ ¥600,000 / 27.3%)",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got: %s", want, content)
		}
	}
}

func TestConsoleLiteWithoutCoreBalance(t *testing.T) {
	report := buildTestReport()
	report.CoreBalance = nil
	out, err := ConsoleFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "more data needed") {
		t.Fatalf("expected insufficient-data message, got: %s", out)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"HOUSEHOLD CASH-FLOW FORECAST",
		"KEY ASSUMPTIONS:",
		"SCENARIO 2: A - Frugal",
		"Net worth turns negative:     2025-12",
		"Best scenario: A - Frugal",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output", want)
		}
	}
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	f := CSVSummarizer{}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 1+13*3 {
		t.Fatalf("expected header + 39 rows, got %d", len(lines))
	}
	if lines[1] != "Baseline,2025-01,1000000,0,false" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.HasPrefix(lines[14], "A - Frugal,") || !strings.HasPrefix(lines[27], "B - Car loan,") {
		t.Fatalf("rows not sorted deterministically: %q / %q", lines[14], lines[27])
	}
	if lines[27+11] != "B - Car loan,2025-12,-100000,330000,true" {
		t.Fatalf("unexpected crash row %q", lines[27+11])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 1+12*3 {
		t.Fatalf("expected header + 36 rows, got %d", len(lines))
	}
	if lines[1] != "Baseline,2025-02,45,1,500000,0,400000,0,0,0,0,400000,30000,0,1100000,30000" {
		t.Fatalf("unexpected first detail row %q", lines[1])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		CoreBalance decimal.Decimal `json:"core_balance"`
		Comparisons []struct {
			Name       string `json:"name"`
			Projection struct {
				CrashMonth *string `json:"crash_month"`
			} `json:"projection"`
		} `json:"comparisons"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.CoreBalance.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("core balance = %s", decoded.CoreBalance)
	}
	if len(decoded.Comparisons) != 2 || decoded.Comparisons[0].Projection.CrashMonth == nil {
		t.Fatalf("unexpected comparisons %+v", decoded.Comparisons)
	}
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("pdf format error: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF-") {
		t.Fatalf("output is not a PDF document")
	}
}

func TestPDFSafe(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Baseline", "Baseline"},
		{"Café – ¥1,000", "Café – ¥1,000"},
		{"車なし", "???"},
		{"田中\u3000家", "?? ?"},
		{"ＡＢＣ１２", "ABC12"},
		{"Plan 車", "Plan ?"},
	}
	for _, tt := range tests {
		if got := pdfSafe(tt.in); got != tt.want {
			t.Fatalf("pdfSafe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPDFFormatterJapaneseNames(t *testing.T) {
	report := buildTestReport()
	report.Comparisons[0].Name = "車を手放す"
	out, err := PDFFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("pdf format error: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF-") {
		t.Fatalf("output is not a PDF document")
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Scenario Summary", "Key Assumptions", "<polyline", "A - Frugal", "2025-12"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	report := buildTestReport()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestYearlyIndexes(t *testing.T) {
	p := buildProjection(0)
	got := yearlyIndexes(p)
	if len(got) != 2 || got[0] != 0 || got[1] != 12 {
		t.Fatalf("yearlyIndexes = %v", got)
	}
	p.Months = append(p.Months, "2026-02", "2026-03")
	got = yearlyIndexes(p)
	if len(got) != 3 || got[2] != 14 {
		t.Fatalf("yearlyIndexes with tail = %v", got)
	}
}

func TestFormatterAliasResolution(t *testing.T) {
	f := GetFormatterByName("console-verbose")
	if f == nil {
		t.Fatalf("alias console-verbose did not resolve to a formatter")
	}
	if f.Name() != "console" {
		t.Fatalf("alias resolved to %q, want 'console'", f.Name())
	}
	if f := GetFormatterByName(" Chart "); f == nil || f.Name() != "pdf" {
		t.Fatalf("alias chart did not resolve to pdf")
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(&domain.ForecastReport{}, "definitely-not-a-format", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}
