// Package ui renders astrolabe output: short diagnostics on stderr and
// styled natal and compatibility reports.
package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes diagnostics. The zero value is not usable; construct one
// with New or NewTo.
type Printer struct {
	w       io.Writer
	verbose bool
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return &Printer{w: os.Stderr}
}

// NewTo returns a Printer writing to w.
func NewTo(w io.Writer) *Printer {
	return &Printer{w: w}
}

// SetVerbose enables Debug output.
func (p *Printer) SetVerbose(v bool) { p.verbose = v }

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", styleError.Render("error:"), msg)
}

// Info prints a de-emphasized status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, styleInfo.Render(msg))
}

// Debug prints msg only in verbose mode.
func (p *Printer) Debug(msg string) {
	if p.verbose {
		p.Info(msg)
	}
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", styleSuccess.Render(iconOK), msg)
}

// Problems prints the outcome of checking a data file: a success line when
// errs is empty, otherwise one bullet per problem.
func (p *Printer) Problems(name string, entries int, errs []error) {
	if len(errs) == 0 {
		p.Success(fmt.Sprintf("%s: %d entries, no problems", name, entries))
		return
	}
	fmt.Fprintf(p.w, "%s %s: %d problem(s)\n", styleError.Render(iconFailed), name, len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.w, "  %s %s\n", styleChallenging.Render(iconBullet), e.Error())
	}
}
