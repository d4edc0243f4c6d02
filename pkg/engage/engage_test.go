package engage

import "testing"

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1.2K", 1200},
		{"3,400", 3400},
		{"2M", 2000000},
		{"1.5B", 1500000000},
		{"940", 940},
		{"2.5k", 2500},
		{"1,234.5K", 1234500},
		{" 12 ", 12},
		{"3.7m", 3700000},
		{"", 0},
		{"abc", 0},
		{"K", 0},
		{"12x", 0},
	}

	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScoreZeroIsFloor(t *testing.T) {
	if got := Score(0, 0, 0); got != 1.0 {
		t.Fatalf("Score(0,0,0) = %v, want 1.0", got)
	}
}

func TestScoreNegativeDegradesToFloor(t *testing.T) {
	if got := Score(-1, 5, 5); got != 1.0 {
		t.Fatalf("Score with negative input = %v, want 1.0", got)
	}
}

func TestScoreBandBoundaries(t *testing.T) {
	tests := []struct {
		name                    string
		likes, comments, shares int
		want                    float64
	}{
		{"weighted 10 low band", 10, 0, 0, 1.75},
		{"weighted 20 band edge", 20, 0, 0, 2.5},
		{"comments weigh x4", 0, 5, 0, 2.5},
		{"shares weigh x8", 4, 2, 1, 2.5},
		{"weighted 100 band edge", 100, 0, 0, 4.0},
		{"weighted 500 band edge", 500, 0, 0, 6.0},
		{"weighted 2000 band edge", 2000, 0, 0, 8.0},
		{"weighted 10000 band edge", 10000, 0, 0, 9.5},
		{"rounds to two decimals", 13, 0, 0, 1.98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.likes, tt.comments, tt.shares); got != tt.want {
				t.Errorf("Score(%d,%d,%d) = %v, want %v",
					tt.likes, tt.comments, tt.shares, got, tt.want)
			}
		})
	}
}

func TestScoreCapsAtTen(t *testing.T) {
	if got := Score(1000000000, 0, 0); got != 10.0 {
		t.Fatalf("Score(1e9,0,0) = %v, want 10.0", got)
	}
}

func TestScoreMonotoneAcrossBands(t *testing.T) {
	prev := 0.0
	for _, likes := range []int{0, 5, 20, 60, 100, 300, 500, 1200, 2000, 5000, 10000, 100000} {
		got := Score(likes, 0, 0)
		if got < prev {
			t.Fatalf("Score(%d,0,0) = %v, below previous %v", likes, got, prev)
		}
		prev = got
	}
}

func TestMetricsTotal(t *testing.T) {
	m := Metrics{Likes: 100, Comments: 10, Shares: 5}
	if got := m.Total(); got != 115 {
		t.Fatalf("Total() = %d, want 115", got)
	}
}
