package services

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "$0.00"},
		{"small", "5", "$5.00"},
		{"hundreds", "409.4", "$409.40"},
		{"thousands", "1234.56", "$1,234.56"},
		{"millions", "1234567.891", "$1,234,567.89"},
		{"exact thousand", "1000", "$1,000.00"},
		{"half up", "0.125", "$0.13"},
		{"negative", "-5", "-$5.00"},
		{"negative thousands", "-12345.6", "-$12,345.60"},
		{"negative rounds to zero", "-0.001", "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(dec(tt.amount)); got != tt.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10.00%"},
		{"0", "0.00%"},
		{"7.125", "7.13%"},
		{"-2.5", "-2.50%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(dec(tt.in)); got != tt.want {
			t.Errorf("FormatPercent(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"115", "115"},
		{"115.00", "115"},
		{"13.54315", "13.54"},
		{"0.5", "0.50"},
		{"0", "0"},
	}
	for _, tt := range tests {
		if got := FormatQty(dec(tt.in)); got != tt.want {
			t.Errorf("FormatQty(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(dec("409.4")); got != "409.40" {
		t.Errorf("FormatAmount = %q, want 409.40", got)
	}
	if got := FormatAmount(dec("1234567.005")); got != "1234567.01" {
		t.Errorf("FormatAmount = %q, want 1234567.01", got)
	}
}

func TestApplyThousandsGrouping(t *testing.T) {
	tests := map[string]string{
		"1":       "1",
		"123":     "123",
		"1234":    "1,234",
		"123456":  "123,456",
		"1234567": "1,234,567",
	}
	for in, want := range tests {
		if got := applyThousandsGrouping(in); got != want {
			t.Errorf("applyThousandsGrouping(%q) = %q, want %q", in, got, want)
		}
	}
}
