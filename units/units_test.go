package units

import "testing"

func TestConvert(t *testing.T) {
	tests := []struct {
		celsius float64
		unit    Unit
		want    float64
	}{
		{0, Fahrenheit, 32},
		{100, Fahrenheit, 212},
		{-40, Fahrenheit, -40},
		{25, Fahrenheit, 77},
		{0, Celsius, 0},
		{21.5, Celsius, 21.5},
		{-12.25, Celsius, -12.25},
	}
	for _, tc := range tests {
		if got := Convert(tc.celsius, tc.unit); got != tc.want {
			t.Errorf("Convert(%v, %v) = %v, want %v", tc.celsius, tc.unit, got, tc.want)
		}
	}
}

func TestSuffix(t *testing.T) {
	if Celsius.Suffix() != "C" || Fahrenheit.Suffix() != "F" {
		t.Fatalf("suffixes: got %q/%q", Celsius.Suffix(), Fahrenheit.Suffix())
	}
}
