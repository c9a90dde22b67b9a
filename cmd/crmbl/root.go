package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/crmbl/pkg/crmbl/config"
	"github.com/jamesainslie/crmbl/pkg/crmbl/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "crmbl",
		Short: "Detect documentation drift in directory trees",
		Long: `Crmbl keeps a manifest of the directories in a codebase and reports
drift: directories that appeared since the manifest was written, and manifest
entries whose directories no longer exist.

Examples:
  crmbl init                 # Create a default config in the current directory
  crmbl scan                 # Compare the tree against the manifest
  crmbl scan --update        # Also record new directories in the manifest
  crmbl verify               # Check that documented directories have READMEs
  crmbl prompt               # Render a documentation prompt from the last scan`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logging.Close()
		},
	}
)

func init() {
	cobra.OnInitialize(initEnv)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: discovered "+config.FileName+")")
	rootCmd.PersistentFlags().StringP("format", "f", "pretty", "output format (pretty, plain, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().String("log-level", "info", "log file level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (default: XDG state dir)")

	// Bind flags to viper
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initEnv enables environment variable overrides for flag values.
func initEnv() {
	viper.SetEnvPrefix("CRMBL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// setupLogging initializes the file logger before any command runs.
func setupLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.Config{
		Level:    viper.GetString("log_level"),
		Path:     viper.GetString("log_file"),
		Rotation: logging.DefaultRotationConfig(),
	}
	if getVerbose() {
		cfg.ConsoleLevel = "debug"
	}

	if err := logging.Init(cfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	return nil
}

// loadConfig loads and resolves the effective configuration. Relative paths
// in the config resolve against the config file's directory, or the working
// directory when no file was found.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	baseDir := "."

	if path == "" {
		if dir, ok := config.Discover("."); ok {
			path = filepath.Join(dir, config.FileName)
			baseDir = dir
		}
	} else {
		baseDir = filepath.Dir(path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if problems := cfg.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			printError("config: %s", problem)
		}
		return nil, fmt.Errorf("invalid configuration (%d problems)", len(problems))
	}

	return cfg.Resolve(baseDir), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
