// Package config provides configuration loading and discovery for crmbl.
package config

// FileName is the configuration file crmbl looks for.
const FileName = ".crmbl-config.json"

// Default configuration values.
const (
	// DefaultRootPath is the directory scanned when none is configured.
	DefaultRootPath = "./"

	// DefaultOutputPath is where the directory manifest is persisted.
	DefaultOutputPath = "./crmbl-map.json"

	// DefaultScanResultPath is where scan results are written.
	DefaultScanResultPath = "./scan-results.json"

	// DefaultReadmeTemplate is the template used when generating README prompts.
	DefaultReadmeTemplate = "./templates/README-template.md"
)

// DefaultIgnore contains directory names excluded from scanning by default.
var DefaultIgnore = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	".next",
	"coverage",
	".cache",
}
