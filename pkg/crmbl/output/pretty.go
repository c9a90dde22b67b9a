package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// PrettyFormatter formats output with colors and styling using lipgloss.
// It produces a visually appealing output suitable for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")

	w.WriteString(f.formatSection("New directories", r.Result.NewDirs, SuccessStyle))
	w.WriteString(f.formatSection("Missing directories", r.Result.MissingDirs, ErrorStyle))

	w.WriteString(f.formatFooter(r))

	if len(r.Result.Warnings) > 0 {
		w.WriteString("\n")
		w.WriteString(f.formatWarnings(r.Result.Warnings))
	}

	return nil
}

// formatHeader builds the header box with scan metadata.
func (f *PrettyFormatter) formatHeader(r *Report) string {
	var lines []string

	sourceLabel := LabelStyle.Render("Source:")
	sourceValue := ValueStyle.Render(r.Source)
	lines = append(lines, fmt.Sprintf("%s %s", sourceLabel, sourceValue))

	var infoParts []string

	manifestLabel := LabelStyle.Render("Manifest:")
	manifestValue := ValueStyle.Render(r.ManifestPath)
	infoParts = append(infoParts, fmt.Sprintf("%s %s", manifestLabel, manifestValue))

	scannedLabel := LabelStyle.Render("Scanned:")
	scannedValue := MutedStyle.Render(humanize.Time(r.Result.GeneratedAt))
	infoParts = append(infoParts, fmt.Sprintf("%s %s", scannedLabel, scannedValue))

	lines = append(lines, strings.Join(infoParts, "  "))

	content := strings.Join(lines, "\n")
	return HeaderBox.Render(content)
}

// formatSection builds a titled directory list. Empty sections are omitted.
func (f *PrettyFormatter) formatSection(title string, dirs []string, style lipgloss.Style) string {
	if len(dirs) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(dirs))))
	sb.WriteString("\n")

	for _, dir := range dirs {
		sb.WriteString("  ")
		sb.WriteString(style.Render(dir))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatFooter builds the footer box with summary counts.
func (f *PrettyFormatter) formatFooter(r *Report) string {
	stats := r.Result.Stats

	var parts []string

	totalLabel := LabelStyle.Render("Total:")
	totalValue := CountStyle.Render(fmt.Sprintf("%d", stats.Total))
	parts = append(parts, fmt.Sprintf("%s %s", totalLabel, totalValue))

	newLabel := LabelStyle.Render("New:")
	newValue := f.countStyle(stats.New, SuccessStyle).Render(fmt.Sprintf("%d", stats.New))
	parts = append(parts, fmt.Sprintf("%s %s", newLabel, newValue))

	missingLabel := LabelStyle.Render("Missing:")
	missingValue := f.countStyle(stats.Missing, ErrorStyle).Render(fmt.Sprintf("%d", stats.Missing))
	parts = append(parts, fmt.Sprintf("%s %s", missingLabel, missingValue))

	documentedLabel := LabelStyle.Render("Documented:")
	documentedValue := ValueStyle.Render(fmt.Sprintf("%d", stats.Documented))
	parts = append(parts, fmt.Sprintf("%s %s", documentedLabel, documentedValue))

	if !r.Drifted() {
		parts = append(parts, SuccessStyle.Render("No drift detected"))
	}

	content := strings.Join(parts, "  ")
	return FooterBox.Render(content)
}

// countStyle highlights non-zero counts, mutes zero counts.
func (f *PrettyFormatter) countStyle(count int, nonZero lipgloss.Style) lipgloss.Style {
	if count == 0 {
		return MutedStyle
	}
	return nonZero
}

// formatWarnings builds a warning block.
func (f *PrettyFormatter) formatWarnings(warnings []string) string {
	var sb strings.Builder

	titleStyle := WarningStyle.Bold(true)
	sb.WriteString(titleStyle.Render("Warnings:"))
	sb.WriteString("\n")

	for _, warning := range warnings {
		sb.WriteString(WarningStyle.Render("  " + warning))
		sb.WriteString("\n")
	}

	return sb.String()
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
