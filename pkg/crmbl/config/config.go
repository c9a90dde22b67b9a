package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrConfigExists is returned when init would overwrite an existing config.
var ErrConfigExists = errors.New("config file already exists")

// Config holds the per-invocation configuration. It is loaded once and
// treated as immutable for the run.
type Config struct {
	RootPath       string   `mapstructure:"rootPath" json:"rootPath"`
	Ignore         []string `mapstructure:"ignore" json:"ignore"`
	OutputPath     string   `mapstructure:"outputPath" json:"outputPath"`
	ReadmeTemplate string   `mapstructure:"readmeTemplate" json:"readmeTemplate"`
}

// Load reads configuration from the given file. An empty path triggers
// upward discovery from the current directory. A missing file is not an
// error: defaults apply silently. Unknown keys in the file are left alone
// (the file is never rewritten outside of init).
//
// Environment variables with the CRMBL_ prefix override file values
// (e.g. CRMBL_ROOTPATH).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	v.SetEnvPrefix("CRMBL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("rootPath", DefaultRootPath)
	v.SetDefault("ignore", DefaultIgnore)
	v.SetDefault("outputPath", DefaultOutputPath)
	v.SetDefault("readmeTemplate", DefaultReadmeTemplate)

	if path == "" {
		if dir, ok := Discover("."); ok {
			path = filepath.Join(dir, FileName)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// Missing file: fall through to defaults.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration and returns human-readable problem
// descriptions. An empty slice means the configuration is usable.
func (c *Config) Validate() []string {
	var problems []string
	if strings.TrimSpace(c.RootPath) == "" {
		problems = append(problems, "rootPath must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		problems = append(problems, "outputPath must not be empty")
	}
	for i, pattern := range c.Ignore {
		if strings.TrimSpace(pattern) == "" {
			problems = append(problems, fmt.Sprintf("ignore[%d] is empty", i))
		}
	}
	return problems
}

// Resolve returns a copy with relative paths resolved against baseDir so the
// rest of the program never depends on the process working directory.
func (c *Config) Resolve(baseDir string) *Config {
	resolved := *c
	resolved.RootPath = resolvePath(baseDir, c.RootPath)
	resolved.OutputPath = resolvePath(baseDir, c.OutputPath)
	if c.ReadmeTemplate != "" {
		resolved.ReadmeTemplate = resolvePath(baseDir, c.ReadmeTemplate)
	}
	return &resolved
}

// resolvePath joins path onto baseDir unless it is already absolute.
func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// WriteDefault creates a default config file in dir. It refuses to overwrite
// an existing file unless force is set; the caller can distinguish that case
// via ErrConfigExists.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)

	if _, err := os.Stat(path); err == nil {
		if !force {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	} else if !os.IsNotExist(err) {
		return path, fmt.Errorf("checking config file: %w", err)
	}

	cfg := Config{
		RootPath:       DefaultRootPath,
		Ignore:         DefaultIgnore,
		OutputPath:     DefaultOutputPath,
		ReadmeTemplate: DefaultReadmeTemplate,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return path, fmt.Errorf("marshaling default config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("writing default config: %w", err)
	}
	return path, nil
}
