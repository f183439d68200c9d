package tracker

import (
	"fmt"
	"io"
	"strings"
)

// Export writes a printable plain-text copy of the checklist.
func (t *Tracker) Export(w io.Writer) error {
	snap := t.Snapshot()
	var b strings.Builder

	title := snap.Title
	if title == "" {
		title = "Checklist"
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(title)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Completed: %d  Remaining: %d  Progress: %d%%\n",
		snap.Overall.Completed, snap.Overall.Remaining, snap.Overall.Percentage)

	for i, s := range snap.Sections {
		p := snap.Progress[i]
		mark := ""
		if p.IsComplete {
			mark = " (complete)"
		}
		fmt.Fprintf(&b, "\n%s [%s]%s\n", s.Title, p.Label(), mark)
		for _, task := range s.Tasks {
			box := "[ ]"
			if task.Checked {
				box = "[x]"
			}
			fmt.Fprintf(&b, "  %s %s\n", box, task.Label)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
