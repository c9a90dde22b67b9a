// Package prompt renders documentation prompts from scan results using Go
// text/template. The template describes the drift a documentation pass
// should address: directories that appeared since the last scan and manifest
// entries whose directories no longer exist.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/jamesainslie/crmbl/pkg/crmbl/scanner"
)

// Data is the data passed to the prompt template.
type Data struct {
	// Root is the scanned root path.
	Root string

	// ManifestPath is where the manifest lives, for inclusion in the prompt.
	ManifestPath string

	// Result is the scan outcome the prompt is generated from.
	Result *scanner.Result
}

// Generator renders prompts from a compiled template.
type Generator struct {
	template *template.Template
}

// templateFuncs returns the custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// date formats a time.Time using the provided layout.
		// Usage: {{date .Result.GeneratedAt "2006-01-02"}}
		"date": func(t time.Time, layout string) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},

		// join concatenates a path list with the given separator.
		// Usage: {{join .Result.NewDirs ", "}}
		"join": strings.Join,
	}
}

// New compiles a generator from a template string.
func New(templateStr string) (*Generator, error) {
	tmpl, err := template.New("prompt").Funcs(templateFuncs()).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template: %w", err)
	}
	return &Generator{template: tmpl}, nil
}

// NewFromFile compiles a generator from a template file. A missing file
// falls back to the built-in default template; any other read error is
// returned.
func NewFromFile(path string) (*Generator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(DefaultTemplate)
		}
		return nil, fmt.Errorf("reading prompt template: %w", err)
	}
	return New(string(data))
}

// Render executes the template over the given data.
func (g *Generator) Render(data Data) (string, error) {
	if data.Result == nil {
		return "", fmt.Errorf("rendering prompt: no scan result")
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// DefaultTemplate is used when no template file is configured or present.
const DefaultTemplate = `# Documentation Update Prompt

Repository root: {{.Root}}
Manifest: {{.ManifestPath}}
Scanned: {{date .Result.GeneratedAt "2006-01-02 15:04:05"}}

{{if .Result.NewDirs -}}
## New directories ({{len .Result.NewDirs}})

The following directories exist on disk but have no manifest entry. Document
each one: its purpose, complexity (1-5), change frequency, entry points, and
key files.

{{range .Result.NewDirs}}- {{.}}
{{end}}
{{- end}}
{{if .Result.MissingDirs -}}
## Missing directories ({{len .Result.MissingDirs}})

The following manifest entries have no backing directory on disk. Remove
them, or explain why they should stay.

{{range .Result.MissingDirs}}- {{.}}
{{end}}
{{- end}}
{{if not .Result.NewDirs}}{{if not .Result.MissingDirs -}}
No drift detected. The manifest matches the directory tree.
{{- end}}{{end}}`
