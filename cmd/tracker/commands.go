package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/tracker"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show overall and per-section progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStatus(cmd.OutOrStdout(), a.tracker.Snapshot())
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [index]...",
		Short: "Toggle tasks by their position (0-based, as listed by print)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			indexes := make([]int, 0, len(args))
			for _, arg := range args {
				idx, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid task index %q", arg)
				}
				indexes = append(indexes, idx)
			}

			snap := a.tracker.Snapshot()
			for _, idx := range indexes {
				ch, err := a.tracker.Toggle(idx)
				if err != nil {
					return err
				}
				state := "unchecked"
				if ch.Checked {
					state = "checked"
				}
				fmt.Fprintf(out, "task %d %s (%s %s)\n", idx, state, snap.Sections[ch.Section].Title, ch.SectionProgress.Label())
				if ch.SectionCompleted {
					fmt.Fprintf(out, "Section complete: %s\n", snap.Sections[ch.Section].Title)
				}
			}
			o := a.tracker.Overall()
			fmt.Fprintf(out, "Completed: %d  Remaining: %d  Progress: %d%%\n", o.Completed, o.Remaining, o.Percentage)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Uncheck every task and delete saved progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to reset all tasks? This action cannot be undone.") {
				fmt.Fprintln(out, "Reset cancelled")
				return nil
			}
			a.tracker.Subscribe(tracker.ListenerFunc(func(e tracker.Event) {
				if e.Kind == tracker.EventNotification {
					fmt.Fprintln(out, e.Message)
				}
			}))
			a.tracker.Reset()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newPrintCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Write a printable copy of the checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" || outPath == "-" {
				return a.tracker.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := a.tracker.Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checklist written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func printStatus(w io.Writer, snap tracker.Snapshot) {
	if snap.Title != "" {
		fmt.Fprintln(w, snap.Title)
	}
	fmt.Fprintf(w, "Completed: %d  Remaining: %d  Progress: %d%%\n\n",
		snap.Overall.Completed, snap.Overall.Remaining, snap.Overall.Percentage)
	for i, s := range snap.Sections {
		p := snap.Progress[i]
		line := fmt.Sprintf("%-32s %s", s.Title, p.Label())
		if p.IsComplete {
			line += " (complete)"
		}
		fmt.Fprintln(w, line)
	}
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
