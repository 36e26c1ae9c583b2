package game

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	c := NewClock(100 * time.Millisecond)
	t0 := time.Unix(100, 0)
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"first tick", t0, 0},
		{"frame", t0.Add(16 * time.Millisecond), 0.016},
		{"backwards", t0, 0},
		{"stall capped", t0.Add(5 * time.Second), 0.1},
	}
	for _, tc := range tests {
		if got := c.Tick(tc.at); got != tc.want {
			t.Fatalf("%s: dt = %v, want %v", tc.name, got, tc.want)
		}
	}
}
