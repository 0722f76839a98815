package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func yen(v int64) Money { return NewMoneyFromDecimal(stddec.NewFromInt(v)) }

func TestNewMoneyFromDecimal(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
	if m.String() != "10" {
		t.Fatalf("display mismatch: got %s", m.String())
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2.4", "2"},
		{"2.5", "3"},
		{"-2.5", "-2"},
		{"-2.6", "-3"},
		{"100000", "100000"},
	}
	for _, c := range cases {
		got := RoundHalfUp(stddec.RequireFromString(c.in)).String()
		if got != c.out {
			t.Fatalf("round %s: got %s want %s", c.in, got, c.out)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := map[int64]string{
		0:        "¥0",
		999:      "¥999",
		1000:     "¥1,000",
		1234567:  "¥1,234,567",
		-250000:  "-¥250,000",
		12345678: "¥12,345,678",
	}
	for in, want := range cases {
		if got := yen(in).Format(); got != want {
			t.Fatalf("Format(%d): got %q want %q", in, got, want)
		}
	}
}

func TestCompact(t *testing.T) {
	cases := map[int64]string{
		8000:        "8,000円",
		10000:       "1万円",
		3500000:     "350万円",
		99999999:    "9,999万円",
		100000000:   "1億円",
		120000000:   "1.2億円",
		1234000000:  "12.34億円",
		-45000000:   "-4,500万円",
		-1500000000: "-15億円",
	}
	for in, want := range cases {
		if got := yen(in).Compact(); got != want {
			t.Fatalf("Compact(%d): got %q want %q", in, got, want)
		}
	}
}
