package output

import (
	"bytes"
	"text/tabwriter"
)

// PlainFormatter formats output as a simple tab-separated table.
// It produces plain text output suitable for scripting and piping.
// No colors or styling are applied.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	// Use tabwriter for aligned columns
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	if _, err := tw.Write([]byte("STATUS\tPATH\n")); err != nil {
		return err
	}

	for _, dir := range r.Result.NewDirs {
		if _, err := tw.Write([]byte("new\t" + dir + "\n")); err != nil {
			return err
		}
	}
	for _, dir := range r.Result.MissingDirs {
		if _, err := tw.Write([]byte("missing\t" + dir + "\n")); err != nil {
			return err
		}
	}
	for _, dir := range r.Result.UnchangedDirs {
		if _, err := tw.Write([]byte("unchanged\t" + dir + "\n")); err != nil {
			return err
		}
	}

	// Flush tabwriter to buffer
	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
