package scoring

import "testing"

func TestLinearBand(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"below low bound", -5, 0},
		{"at low bound", 5, 0},
		{"midpoint", 10, 12.5},
		{"at high bound", 15, 25},
		{"above high bound", 100, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linearBand(tt.x, 5, 15, 0, 25)
			if got != tt.want {
				t.Errorf("linearBand(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestLinearBand_Monotonic(t *testing.T) {
	prev := -1.0
	for x := -10.0; x <= 60.0; x += 0.25 {
		got := linearBand(x, 5, 22.5, 0, 25)
		if got < prev {
			t.Fatalf("linearBand not monotonic: f(%v) = %v < previous %v", x, got, prev)
		}
		if got < 0 || got > 25 {
			t.Fatalf("linearBand(%v) = %v, outside [0, 25]", x, got)
		}
		prev = got
	}
}

func TestBandPenalty(t *testing.T) {
	b := Band{Low: 1.5, High: 5, Max: 20}

	if got := bandPenalty(0, b); got != 0 {
		t.Errorf("bandPenalty(0) = %v, want 0", got)
	}
	if got := bandPenalty(10, b); got != 20 {
		t.Errorf("bandPenalty(10) = %v, want 20", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-5, 0, 100, 0},
		{50, 0, 100, 50},
		{150, 0, 100, 100},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}

	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
