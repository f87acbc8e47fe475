package earnings

import "testing"

func TestCompute(t *testing.T) {
	cases := []struct {
		name       string
		elapsed    float64
		rate       float64
		conversion float64
		expected   float64
	}{
		{"one hour", 3600, 10, 85, 850},
		{"half an hour", 1800, 10, 85, 425},
		{"nothing elapsed", 0, 42.5, 99, 0},
		{"zero rate", 7200, 0, 85, 0},
		{"rounds to paise", 1, 5, 85, 0.12},
		{"fractional seconds", 90.5, 12, 85, 25.64},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.elapsed, tc.rate, tc.conversion)
			if got != tc.expected {
				t.Errorf("Expected: %.2f, but got: %v", tc.expected, got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := FormatINR(425); got != "₹425.00" {
		t.Errorf("Expected: ₹425.00, but got: %s", got)
	}

	if got := FormatUSD(10); got != "$10.00" {
		t.Errorf("Expected: $10.00, but got: %s", got)
	}

	if got := Format(0.125); got != "0.13" {
		t.Errorf("Expected: 0.13, but got: %s", got)
	}
}

func TestParseRate(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		"abc":    0,
		"-3":     0,
		"NaN":    0,
		"+Inf":   0,
		" 12.5 ": 12.5,
		"7":      7,
	}

	for in, expected := range cases {
		if got := ParseRate(in); got != expected {
			t.Errorf("ParseRate(%q): expected %v, but got %v", in, expected, got)
		}
	}
}
