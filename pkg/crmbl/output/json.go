package output

import (
	"bytes"
	"encoding/json"
	"time"
)

// jsonOutput represents the full JSON output structure.
type jsonOutput struct {
	Meta   jsonMeta   `json:"meta"`
	Result jsonResult `json:"result"`
}

// jsonMeta represents scan metadata in JSON output.
type jsonMeta struct {
	Source       string `json:"source"`
	ManifestPath string `json:"manifest_path"`
	Drifted      bool   `json:"drifted"`
}

// jsonResult represents the drift sets and stats in JSON output.
type jsonResult struct {
	ID            string    `json:"id"`
	GeneratedAt   time.Time `json:"generated_at"`
	NewDirs       []string  `json:"newDirs"`
	MissingDirs   []string  `json:"missingDirs"`
	UnchangedDirs []string  `json:"unchangedDirs"`
	Stats         jsonStats `json:"stats"`
	Warnings      []string  `json:"warnings,omitempty"`
}

// jsonStats represents scan statistics in JSON output.
type jsonStats struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	Missing    int `json:"missing"`
	Documented int `json:"documented"`
}

// JSONFormatter formats output as a single indented JSON object.
// It produces a complete JSON document with meta and result sections.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Report) error {
	output := f.buildOutput(r)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildOutput converts a Report to the JSON output structure.
func (f *JSONFormatter) buildOutput(r *Report) jsonOutput {
	res := r.Result

	newDirs := res.NewDirs
	if newDirs == nil {
		newDirs = []string{}
	}
	missingDirs := res.MissingDirs
	if missingDirs == nil {
		missingDirs = []string{}
	}
	unchangedDirs := res.UnchangedDirs
	if unchangedDirs == nil {
		unchangedDirs = []string{}
	}

	return jsonOutput{
		Meta: jsonMeta{
			Source:       r.Source,
			ManifestPath: r.ManifestPath,
			Drifted:      r.Drifted(),
		},
		Result: jsonResult{
			ID:            res.ID,
			GeneratedAt:   res.GeneratedAt,
			NewDirs:       newDirs,
			MissingDirs:   missingDirs,
			UnchangedDirs: unchangedDirs,
			Stats: jsonStats{
				Total:      res.Stats.Total,
				New:        res.Stats.New,
				Missing:    res.Stats.Missing,
				Documented: res.Stats.Documented,
			},
			Warnings: res.Warnings,
		},
	}
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
