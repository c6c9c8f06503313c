// Package console prints operator-facing status lines.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter writes colored status lines to an output stream
type Reporter struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	detail  *color.Color
}

// NewReporter creates a reporter writing to out, or stdout when out is nil
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
		detail:  color.New(color.FgRed),
	}
}

func (r *Reporter) Success(format string, args ...any) {
	r.println(r.success, format, args...)
}

func (r *Reporter) Failure(format string, args ...any) {
	r.println(r.failure, format, args...)
}

// Detail is a secondary failure line, e.g. the cause below a failure
func (r *Reporter) Detail(format string, args ...any) {
	r.println(r.detail, format, args...)
}

func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Reporter) println(c *color.Color, format string, args ...any) {
	c.Fprintf(r.out, format+"\n", args...)
}
