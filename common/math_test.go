package common

import "testing"

func TestApproach(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		target  float64
		rate    float64
		delta   float64
		want    float64
		reached bool
	}{
		{"down_partial", 240, 172, 300, 0.125, 202.5, false},
		{"down_clamped", 180, 172, 300, 0.125, 172, true},
		{"up_partial", 0, 104, 180, 0.5, 90, false},
		{"up_clamped", 100, 104, 180, 0.5, 104, true},
		{"already_there", 5, 5, 10, 1, 5, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.start
			got := Approach(&v, c.target, c.rate, c.delta)
			if v != c.want {
				t.Fatalf("expected value %v, got %v", c.want, v)
			}
			if got != c.reached {
				t.Fatalf("expected reached=%v, got %v", c.reached, got)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	for _, c := range []struct{ in, want float64 }{{-1, 0}, {0.25, 0.25}, {3, 1}} {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
