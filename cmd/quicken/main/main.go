package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/quicken/cmd/quicken"

	// Register the built-in plugins
	_ "github.com/arthur-debert/quicken/pkg/plugins"
)

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"})

func main() {
	rootCmd := quicken.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
