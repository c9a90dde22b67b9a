package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/crmbl/pkg/crmbl/config"
	"github.com/jamesainslie/crmbl/pkg/crmbl/manifest"
	"github.com/jamesainslie/crmbl/pkg/crmbl/output"
	"github.com/jamesainslie/crmbl/pkg/crmbl/scanner"
)

var (
	scanResultsPath string
	scanUpdate      bool
	scanPrune       bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Compare the directory tree against the manifest",
	Long: `Scan enumerates directories under the configured root, honoring the
ignore patterns, and compares them against the manifest. The drift sets
(new, missing, unchanged) are written to the results file and printed.

With --update, new directories are recorded in the manifest with default
metadata. With --prune, manifest entries whose directories no longer exist
are removed.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanResultsPath, "results", config.DefaultScanResultPath, "scan results file")
	scanCmd.Flags().BoolVar(&scanUpdate, "update", false, "record new directories in the manifest")
	scanCmd.Flags().BoolVar(&scanPrune, "prune", false, "remove manifest entries for missing directories")
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printVerbose("Scanning %s against %s", cfg.RootPath, cfg.OutputPath)

	s := scanner.New(scanner.Options{
		Root:         cfg.RootPath,
		Ignore:       cfg.Ignore,
		ManifestPath: cfg.OutputPath,
	})

	result, err := s.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.RootPath, err)
	}

	if err := scanner.SaveResult(result, scanResultsPath); err != nil {
		return err
	}
	printVerbose("Wrote scan results to %s", scanResultsPath)

	if scanUpdate || scanPrune {
		if err := applyManifestChanges(cfg, result); err != nil {
			return err
		}
	}

	formatter, err := output.Get(viper.GetString("format"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	report := &output.Report{
		Source:       cfg.RootPath,
		ManifestPath: cfg.OutputPath,
		Result:       result,
	}
	if err := formatter.Format(&buf, report); err != nil {
		return fmt.Errorf("formatting scan report: %w", err)
	}

	if !getQuiet() {
		fmt.Print(buf.String())
	}
	return nil
}

// applyManifestChanges records new directories and/or prunes missing ones,
// then persists the manifest.
func applyManifestChanges(cfg *config.Config, result *scanner.Result) error {
	m, err := manifest.Load(cfg.OutputPath)
	if err != nil {
		// A corrupt or absent manifest does not block recording: start fresh.
		printVerbose("Manifest unavailable (%v), starting fresh", err)
		m = manifest.NewEmpty(nil)
	}

	if scanUpdate {
		for _, dir := range result.NewDirs {
			m = manifest.Update(m, dir, manifest.DirectoryEntry{}, nil)
		}
		printInfo("Recorded %d new directories", len(result.NewDirs))
	}
	if scanPrune {
		m = manifest.RemoveDirectories(m, result.MissingDirs, nil)
		printInfo("Pruned %d missing directories", len(result.MissingDirs))
	}

	if err := manifest.Save(m, cfg.OutputPath); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	return nil
}
