package common

import "testing"

func TestFormatSignedPct(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.345, "+12.35%"},
		{0, "+0.00%"},
		{-7.5, "-7.50%"},
	}
	for _, tt := range tests {
		if got := FormatSignedPct(tt.in); got != tt.want {
			t.Errorf("FormatSignedPct(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedPct1(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4.0, "+4.0%"},
		{-0.25, "-0.2%"},
		{0, "+0.0%"},
	}
	for _, tt := range tests {
		if got := FormatSignedPct1(tt.in); got != tt.want {
			t.Errorf("FormatSignedPct1(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatPct1(t *testing.T) {
	if got := FormatPct1(22.51); got != "22.5%" {
		t.Errorf("FormatPct1(22.51) = %s, want 22.5%%", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{182.5, "$182.50"},
		{0, "$0.00"},
		{-3.125, "-$3.12"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
