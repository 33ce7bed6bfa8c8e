package statistics

import "testing"

func TestMinMax(t *testing.T) {
	values := []float64{30, 40, 35}
	if got := Min(values); got != 30 {
		t.Errorf("Min = %v, want 30", got)
	}
	if got := Max(values); got != 40 {
		t.Errorf("Max = %v, want 40", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{30, 40}); got != 35 {
		t.Errorf("Mean = %v, want 35", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd count", []float64{40, 30, 35}, 35},
		{"even count averages middle pair", []float64{10, 20, 30, 40}, 25},
		{"single value", []float64{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input slice was reordered: %v", values)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{35.0, 35.0},
		{35.556, 35.56},
		{35.554, 35.55},
		{-2.344, -2.34},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
