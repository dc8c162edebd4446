package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Arbor ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Green into amber, the same hues the insertion cues use
	lines := []struct {
		text  string
		color string
	}{
		{"     _         _                ", "#a6e3a1"},
		{"    / \\   _ __| |__   ___  _ __ ", "#b9e2a0"},
		{"   / _ \\ | '__| '_ \\ / _ \\| '__|", "#cde09d"},
		{"  / ___ \\| |  | |_) | (_) | |   ", "#e2d59a"},
		{" /_/   \\_\\_|  |_.__/ \\___/|_|   ", "#fab387"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
