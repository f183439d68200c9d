package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{3, 5, 60},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{5, 5, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestOverallInvariants(t *testing.T) {
	// every pattern of up to 7 tasks
	for n := 0; n <= 7; n++ {
		for mask := 0; mask < 1<<n; mask++ {
			checked := make([]bool, n)
			done := 0
			for i := range checked {
				checked[i] = mask&(1<<i) != 0
				if checked[i] {
					done++
				}
			}
			s := Overall(checked)
			assert.Equal(t, n, s.Completed+s.Remaining)
			assert.Equal(t, done, s.Completed)
			want := 0
			if n > 0 {
				want = int(math.Round(100 * float64(done) / float64(n)))
			}
			assert.Equal(t, want, s.Percentage)
		}
	}
}

func TestOverallEmpty(t *testing.T) {
	s := Overall(nil)
	assert.Equal(t, Summary{}, s)
}

func TestPerSection(t *testing.T) {
	got := PerSection([][]bool{
		{true, true, true},
		{false, false},
		{},
		{true, false},
	})

	assert.Equal(t, []SectionSummary{
		{Completed: 3, Total: 3, Percentage: 100, IsComplete: true},
		{Completed: 0, Total: 2, Percentage: 0, IsComplete: false},
		{Completed: 0, Total: 0, Percentage: 0, IsComplete: false},
		{Completed: 1, Total: 2, Percentage: 50, IsComplete: false},
	}, got)
	assert.Equal(t, "1/2", got[3].Label())
}

func TestThreeOfFiveScenario(t *testing.T) {
	sections := [][]bool{{true, true, true}, {false, false}}
	var flat []bool
	for _, s := range sections {
		flat = append(flat, s...)
	}

	assert.Equal(t, Summary{Completed: 3, Remaining: 2, Total: 5, Percentage: 60}, Overall(flat))
	per := PerSection(sections)
	assert.True(t, per[0].IsComplete)
	assert.False(t, per[1].IsComplete)
}
