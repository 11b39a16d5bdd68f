package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when a presentation
// starts.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm ember gradient
	s1 := termenv.String("   __ _               _     _ ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("  / _(_)_ __ ___  ___(_) __| | ___ ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | |_| | '__/ _ \\/ __| |/ _` |/ _ \\").Foreground(p.Color("#f97316"))
	s4 := termenv.String(" |  _| | | |  __/\\__ \\ | (_| |  __/").Foreground(p.Color("#ef4444"))
	s5 := termenv.String(" |_| |_|_|  \\___||___/_|\\__,_|\\___|").Foreground(p.Color("#dc2626"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
