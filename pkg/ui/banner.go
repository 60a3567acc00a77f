package ui

import "strings"

const (
	reset       = "\033[0m"
	bold        = "\033[1m"
	mint        = "\033[38;5;121m"
	seafoam     = "\033[38;5;49m"
	cobalt      = "\033[38;5;33m"
	deepIndigo  = "\033[38;5;61m"
	fuchsia     = "\033[38;5;177m"
	honeyOrange = "\033[38;5;214m"
)

// Banner renders a colored corejitter wordmark.
func Banner() string {
	var b strings.Builder

	jitterLetters := [][]string{
		{"     ██╗", "     ██║", "     ██║", "██   ██║", "╚█████╔╝", " ╚════╝ "},
		{"██╗", "██║", "██║", "██║", "██║", "╚═╝"},
		{"████████╗", "╚══██╔══╝", "   ██║   ", "   ██║   ", "   ██║   ", "   ╚═╝   "},
		{"████████╗", "╚══██╔══╝", "   ██║   ", "   ██║   ", "   ██║   ", "   ╚═╝   "},
		{"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔══██╗", "██║  ██║", "╚═╝  ╚═╝"},
	}
	gradient := []string{mint, seafoam, cobalt, deepIndigo, fuchsia, honeyOrange}
	rows := make([]string, len(jitterLetters[0]))
	for i, letter := range jitterLetters {
		color := gradient[i%len(gradient)]
		for row := 0; row < len(letter); row++ {
			rows[row] += color + letter[row] + "  "
		}
	}
	for _, line := range rows {
		b.WriteString(bold + line + reset + "\n")
	}

	b.WriteString("\n")
	b.WriteString(bold + cobalt + "corejitter" + reset + "  •  per-core timer jitter\n\n")

	return b.String()
}
