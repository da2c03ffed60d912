package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNightMinutes(t *testing.T) {
	cases := []struct {
		name     string
		startMin int
		endMin   int
		want     int
	}{
		{"entirely daytime", 9 * 60, 18 * 60, 0},
		{"evening into night window", 18 * 60, 23 * 60, 60},
		{"up to midnight", 20 * 60, endOfDayMinute, 120},
		{"crossing midnight full night", 22 * 60, endOfDayMinute + 6*60, 8 * 60},
		{"crossing midnight partial", 20 * 60, endOfDayMinute + 2*60, 4 * 60},
		{"early morning same day", 5 * 60, 9 * 60, 60},
		{"overnight past the night window", 21 * 60, endOfDayMinute + 8*60, 8 * 60},
		{"zero length", 10 * 60, 10 * 60, 0},
		{"inverted interval", 10 * 60, 9 * 60, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, nightMinutes(c.startMin, c.endMin))
		})
	}
}

// Splitting an overnight interval at midnight and summing the halves must
// equal computing it in one piece.
func TestNightMinutesSplitSymmetry(t *testing.T) {
	start := 22 * 60
	end := endOfDayMinute + 5*60 // 05:00 next day

	whole := nightMinutes(start, end)
	firstHalf := nightMinutes(start, endOfDayMinute)
	secondHalf := nightMinutes(0, 5*60)

	assert.Equal(t, whole, firstHalf+secondHalf)
	assert.Equal(t, 7*60, whole)
}
