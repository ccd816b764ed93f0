package output

import (
	"fmt"
	"io"
	"secreport/internal/report"
)

// Console prints the report for a human reader
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Show prints the banner and the indented document
func (c *Console) Show(r report.SecurityReport) error {
	text, err := report.Indented(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.w, "--- Security Incident Report ---\n\n%s", text)
	return err
}
