package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the SmartChef ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm kitchen gradient (amber to red)
	s1 := termenv.String("   _____ __    _ ____     __ ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("  / ___// /__ (_) / /__  / /_").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String("  \\__ \\/ //_// / / / _ \\/ __/").Foreground(p.Color("#f97316"))
	s4 := termenv.String(" ___/ / ,<  / / / /  __/ /_  ").Foreground(p.Color("#ef4444"))
	s5 := termenv.String("/____/_/|_|/_/_/_/\\___/\\__/  ").Foreground(p.Color("#dc2626"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
