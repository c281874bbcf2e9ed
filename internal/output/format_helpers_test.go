package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.RequireFromString("174645.19"), "£174,645"},
		{decimal.RequireFromString("562914.61"), "£562,915"},
		{decimal.NewFromInt(0), "£0"},
		{decimal.NewFromInt(999), "£999"},
		{decimal.NewFromInt(1000000), "£1,000,000"},
		{decimal.NewFromInt(-2500), "-£2,500"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"16000", "16,000"},
		{"1200.5", "1,200.50"},
		{"0.05", "0.05"},
		{"-10.25", "-10.25"},
	}
	for _, c := range cases {
		if got := FormatAmount(decimal.RequireFromString(c.in)); got != c.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(decimal.RequireFromString("0.049")); got != "4.9%" {
		t.Errorf("FormatRate(0.049) = %q", got)
	}
	if got := FormatRate(decimal.Zero); got != "0%" {
		t.Errorf("FormatRate(0) = %q", got)
	}
}

func TestSetLocale(t *testing.T) {
	t.Cleanup(func() { _ = SetLocale(DefaultLocale) })

	if err := SetLocale("de-DE"); err != nil {
		t.Fatalf("SetLocale: %v", err)
	}
	if got := FormatCurrency(decimal.NewFromInt(174645)); got != "£174.645" {
		t.Errorf("de-DE grouping = %q", got)
	}
	if err := SetLocale("not a locale!"); err == nil {
		t.Errorf("expected error for invalid locale")
	}
}
