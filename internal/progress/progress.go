// Package progress computes completion counts and percentages.
package progress

import (
	"fmt"
	"math"
)

type Summary struct {
	Completed  int
	Remaining  int
	Total      int
	Percentage int
}

type SectionSummary struct {
	Completed  int
	Total      int
	Percentage int
	IsComplete bool
}

// Percentage is completed/total as a whole percent, rounded half up.
// It is 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(completed)*100/float64(total) + 0.5))
}

func Overall(checked []bool) Summary {
	done := count(checked)
	return Summary{
		Completed:  done,
		Remaining:  len(checked) - done,
		Total:      len(checked),
		Percentage: Percentage(done, len(checked)),
	}
}

func Section(checked []bool) SectionSummary {
	done := count(checked)
	total := len(checked)
	return SectionSummary{
		Completed:  done,
		Total:      total,
		Percentage: Percentage(done, total),
		IsComplete: total > 0 && done == total,
	}
}

func PerSection(sections [][]bool) []SectionSummary {
	out := make([]SectionSummary, len(sections))
	for i, s := range sections {
		out[i] = Section(s)
	}
	return out
}

// Label renders the section counter, e.g. "2/5".
func (s SectionSummary) Label() string {
	return fmt.Sprintf("%d/%d", s.Completed, s.Total)
}

func count(checked []bool) int {
	n := 0
	for _, c := range checked {
		if c {
			n++
		}
	}
	return n
}
