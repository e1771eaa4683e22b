package services

import "testing"

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{0, 0},
		{12.50, 1250},
		{7.25, 725},
		{19.75, 1975},
		{0.999, 100},
		{99.99, 9999},
	}
	for _, tt := range tests {
		if got := minorUnits(tt.price); got != tt.want {
			t.Errorf("minorUnits(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}
