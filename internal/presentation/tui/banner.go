package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the command line banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	s1 := termenv.String("                 _      _").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  _ __  ___  __| |___| |___").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" | '  \\/ _ \\/ _` / -_) / _ \\").Foreground(p.Color("#e879f9"))
	s4 := termenv.String(" |_|_|_\\___/\\__,_\\___|_\\___/").Foreground(p.Color("#fb7185"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w)
}

// Status formats a one line outcome: a green check or a red cross followed
// by msg. Colors are dropped when the profile is Ascii.
func Status(p termenv.Profile, ok bool, msg string) string {
	mark := p.String("✔").Foreground(p.Color("#22c55e"))
	if !ok {
		mark = p.String("✘").Foreground(p.Color("#ef4444"))
	}
	return mark.String() + " " + msg
}
