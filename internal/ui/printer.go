// Package ui covers the terminal side of dircmp: centered banners, the
// colored status lines and the operator prompt.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	modeFont       = 3
	modeBackground = 4
)

const (
	colorBlack = iota
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorPurple
	colorCyan
	colorWhite
)

const (
	styleNormal = 0
	styleBold   = 1
	styleFaint  = 2
)

func colored(str string, color, mode, style int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	sb.WriteString(strconv.Itoa(mode))
	sb.WriteString(strconv.Itoa(color))
	if style > 0 {
		sb.WriteString(";")
		sb.WriteString(strconv.Itoa(style))
	}
	sb.WriteString("m")
	sb.WriteString(str)
	sb.WriteString("\033[0m") // reset
	return sb.String()
}

const defaultWidth = 80

// Printer writes operator-facing output. Color and Width default to off
// and 80 columns; NewPrinter turns both on when out is a terminal.
type Printer struct {
	Out   io.Writer
	Color bool
	Width func() int
}

// NewPrinter builds a Printer for out, querying the terminal for its
// width and enabling color only when out is a terminal and NO_COLOR is
// unset.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{Out: out}
	f, ok := out.(*os.File)
	if !ok {
		return p
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return p
	}
	p.Color = os.Getenv("NO_COLOR") == ""
	p.Width = func() int {
		w, _, err := term.GetSize(fd)
		if err != nil || w <= 0 {
			return defaultWidth
		}
		return w
	}
	return p
}

func (p *Printer) width() int {
	if p.Width == nil {
		return defaultWidth
	}
	return p.Width()
}

// Banner prints info centered in a dashed rule across the terminal.
func (p *Printer) Banner(info string) {
	line := center(info, p.width())
	if p.Color {
		line = colored(line, colorCyan, modeFont, styleFaint)
	}
	fmt.Fprintln(p.Out, line)
}

// Hint prints a short status line in faint green.
func (p *Printer) Hint(format string, args ...any) {
	fmt.Fprintln(p.Out, p.Accent(fmt.Sprintf(format, args...)))
}

// Accent returns s wrapped in the hint color when color is enabled, so
// callers can hand colored text to collaborators that write it raw.
func (p *Printer) Accent(s string) string {
	if p.Color {
		return colored(s, colorGreen, modeFont, styleFaint)
	}
	return s
}

// Notef prints a plain line.
func (p *Printer) Notef(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat("-", left) + s + strings.Repeat("-", right)
}
