package quicken

import (
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/quicken/pkg/ui"
)

func stdoutStyled() bool {
	return ui.DetectFormat(os.Stdout) == ui.FormatTerminal
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !stdoutStyled() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// renderMarkdown renders md through glamour when styled, and returns it
// unchanged otherwise or when rendering fails.
func renderMarkdown(md string, styled bool) string {
	if !styled {
		return md
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
