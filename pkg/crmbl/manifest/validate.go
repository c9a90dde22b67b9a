package manifest

import (
	"encoding/json"
	"fmt"
	"time"
)

// ValidationResult reports the outcome of a structural manifest check.
// Validation is a query: it never mutates its input and never panics.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// sequenceFields are entry fields that must decode as JSON arrays when present.
var sequenceFields = []string{"entryPoints", "internalDeps", "externalDeps", "subdirectories"}

// Validate structurally checks a decoded manifest document. The document is
// loosely typed (as produced by json.Unmarshal into map[string]any) so that
// type violations — a string complexity, a scalar entryPoints — are
// observable rather than lost at decode time. All violations are collected;
// nothing short-circuits.
func Validate(doc map[string]any) ValidationResult {
	res := ValidationResult{Errors: []string{}}
	if doc == nil {
		res.Errors = append(res.Errors, "manifest is empty")
		return res
	}

	validateGenerated(doc, &res)
	validateDirectories(doc, &res)

	res.Valid = len(res.Errors) == 0
	return res
}

// ValidateBytes parses raw JSON and validates the result. Parse failures are
// reported as a validation error, not returned as a Go error.
func ValidateBytes(data []byte) ValidationResult {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return ValidationResult{Errors: []string{fmt.Sprintf("manifest is not valid JSON: %v", err)}}
	}
	return Validate(doc)
}

func validateGenerated(doc map[string]any, res *ValidationResult) {
	raw, ok := doc["generated"]
	if !ok {
		res.Errors = append(res.Errors, "missing 'generated' timestamp")
		return
	}
	s, ok := raw.(string)
	if !ok {
		res.Errors = append(res.Errors, "'generated' must be a timestamp string")
		return
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("'generated' is not a parseable timestamp: %q", s))
	}
}

func validateDirectories(doc map[string]any, res *ValidationResult) {
	raw, ok := doc["directories"]
	if !ok {
		res.Errors = append(res.Errors, "missing 'directories' mapping")
		return
	}
	dirs, ok := raw.(map[string]any)
	if !ok {
		res.Errors = append(res.Errors, "'directories' must be a mapping of path to entry")
		return
	}

	for path, rawEntry := range dirs {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: entry must be an object", path))
			continue
		}
		validateEntry(path, entry, res)
	}
}

func validateEntry(path string, entry map[string]any, res *ValidationResult) {
	// Purpose must be present; any value (including empty) is accepted.
	if _, ok := entry["purpose"]; !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: missing 'purpose'", path))
	}

	if raw, ok := entry["complexity"]; ok {
		if n, isNum := raw.(float64); !isNum || n < 1 || n > 5 {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: 'complexity' must be a number between 1 and 5", path))
		}
	}

	if raw, ok := entry["changeFrequency"]; ok {
		s, isStr := raw.(string)
		if !isStr || !ChangeFrequency(s).Valid() {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"%s: 'changeFrequency' must be one of %q, %q, %q, %q",
				path, FreqStable, FreqModerate, FreqFrequent, FreqUnknown))
		}
	}

	for _, field := range sequenceFields {
		if raw, ok := entry[field]; ok {
			if _, isSeq := raw.([]any); !isSeq {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: '%s' must be a sequence", path, field))
			}
		}
	}

	if raw, ok := entry["keyFiles"]; ok {
		validateKeyFiles(path, raw, res)
	}
}

func validateKeyFiles(path string, raw any, res *ValidationResult) {
	items, ok := raw.([]any)
	if !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: 'keyFiles' must be a sequence", path))
		return
	}
	for i, item := range items {
		kf, ok := item.(map[string]any)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: keyFiles[%d] must be an object", path, i))
			continue
		}
		if s, _ := kf["file"].(string); s == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: keyFiles[%d] missing 'file'", path, i))
		}
		if s, _ := kf["description"].(string); s == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: keyFiles[%d] missing 'description'", path, i))
		}
	}
}
