package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseYearMonth tests strict YYYY-MM parsing
func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "January",
			input:    "2025-01",
			expected: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "December",
			input:    "2030-12",
			expected: time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "Month zero", input: "2025-00", wantErr: true},
		{name: "Month thirteen", input: "2025-13", wantErr: true},
		{name: "Unpadded month", input: "2025-1", wantErr: true},
		{name: "Full date", input: "2025-01-15", wantErr: true},
		{name: "Slash separator", input: "2025/01", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYearMonth(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidYearMonth)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestFormatYearMonthRoundTrip(t *testing.T) {
	for _, ym := range []string{"1999-01", "2025-09", "2040-12"} {
		assert.Equal(t, ym, FormatYearMonth(MustParseYearMonth(ym)))
	}
	assert.Equal(t, "2025-03", YearMonthOf(2025, 3))
}

func TestAddMonth(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"2025-01", "2025-02"},
		{"2025-11", "2025-12"},
		{"2025-12", "2026-01"},
	}
	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatYearMonth(AddMonth(MustParseYearMonth(tt.from))))
		})
	}
}

func TestAddMonthsFromMonthEnd(t *testing.T) {
	// Jan 31 + 1 month must land in February, not March
	jan31 := time.Date(2025, 1, 31, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02", FormatYearMonth(AddMonths(jan31, 1)))
	assert.Equal(t, "2024-12", FormatYearMonth(AddMonths(jan31, -1)))
}

func TestDiffMonths(t *testing.T) {
	tests := []struct {
		name    string
		later   string
		earlier string
		want    int
	}{
		{"Same month", "2025-05", "2025-05", 0},
		{"Within year", "2025-05", "2025-01", 4},
		{"Across year", "2026-02", "2025-11", 3},
		{"Negative", "2025-01", "2025-03", -2},
		{"Ten years", "2035-01", "2025-01", 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffMonths(tt.later, tt.earlier))
		})
	}

	_, err := DiffMonthsE("2025-13", "2025-01")
	assert.ErrorIs(t, err, ErrInvalidYearMonth)
	assert.Equal(t, 0, DiffMonths("bogus", "2025-01"))
}

func TestInRangeAndCompare(t *testing.T) {
	assert.True(t, InRange("2025-01", "2025-01", "2025-03"))
	assert.True(t, InRange("2025-03", "2025-01", "2025-03"))
	assert.False(t, InRange("2024-12", "2025-01", "2025-03"))
	assert.False(t, InRange("2025-04", "2025-01", "2025-03"))

	assert.Equal(t, -1, CompareYearMonth("2024-12", "2025-01"))
	assert.Equal(t, 0, CompareYearMonth("2025-01", "2025-01"))
	assert.Equal(t, 1, CompareYearMonth("2025-10", "2025-09"))
}
