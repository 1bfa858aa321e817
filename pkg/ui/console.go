// Package ui holds the console that plugins and commands print through.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

const statusWidth = 12

var (
	statusStyle = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	warnStyle   = pterm.NewStyle(pterm.FgYellow)
	errorStyle  = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	headerStyle = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	plainStyle  = pterm.NewStyle()
)

// Console writes user-facing messages. Styling is applied only when Styled is
// set; Err receives error messages and defaults to Out.
type Console struct {
	Out    io.Writer
	Err    io.Writer
	Styled bool
}

// NewConsole returns a console writing to out, styled when out is a color
// terminal.
func NewConsole(out io.Writer) *Console {
	return &Console{Out: out, Styled: DetectFormat(out) == FormatTerminal}
}

// NewConsoleWithFormat returns a console with an explicit format. FormatAuto
// behaves like NewConsole.
func NewConsoleWithFormat(out io.Writer, format Format) *Console {
	if format == FormatAuto {
		return NewConsole(out)
	}
	return &Console{Out: out, Styled: format == FormatTerminal}
}

// Discard returns a console that drops everything
func Discard() *Console {
	return &Console{Out: io.Discard}
}

// Stdout returns a console on the process standard output
func Stdout() *Console {
	c := NewConsole(os.Stdout)
	c.Err = os.Stderr
	return c
}

// Say prints msg. A message ending in a space or tab is printed as is so a
// prompt can follow on the same line, otherwise a newline is added unless msg
// already ends with one.
func (c *Console) Say(msg string) {
	c.print(c.out(), msg, plainStyle)
}

// Status prints msg after a right-aligned status label
func (c *Console) Status(status, msg string) {
	label := fmt.Sprintf("%*s", statusWidth, status)
	if c.Styled {
		label = statusStyle.Sprint(label)
	}
	line := label + "  " + msg
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, _ = io.WriteString(c.out(), line)
}

// Warn prints a warning
func (c *Console) Warn(msg string) {
	c.print(c.out(), msg, warnStyle)
}

// Error prints an error message to Err
func (c *Console) Error(msg string) {
	w := c.Err
	if w == nil {
		w = c.out()
	}
	c.print(w, msg, errorStyle)
}

// Table renders rows under header
func (c *Console) Table(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if c.Styled {
		table = table.WithHeaderStyle(headerStyle)
	} else {
		table = table.
			WithStyle(plainStyle).
			WithHeaderStyle(plainStyle).
			WithSeparatorStyle(plainStyle).
			WithHeaderRowSeparatorStyle(plainStyle)
	}

	rendered, err := table.Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out(), rendered)
	return err
}

func (c *Console) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

func (c *Console) print(w io.Writer, msg string, style *pterm.Style) {
	newline := !strings.HasSuffix(msg, " ") && !strings.HasSuffix(msg, "\t") && !strings.HasSuffix(msg, "\n")
	if c.Styled && msg != "" {
		msg = style.Sprint(msg)
	}
	if newline {
		msg += "\n"
	}
	_, _ = io.WriteString(w, msg)
}
