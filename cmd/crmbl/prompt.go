package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/crmbl/pkg/crmbl/config"
	"github.com/jamesainslie/crmbl/pkg/crmbl/prompt"
	"github.com/jamesainslie/crmbl/pkg/crmbl/scanner"
)

var promptResultsPath string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Render a documentation prompt from the last scan",
	Long: `Prompt renders the configured template (readmeTemplate) over the most
recent scan results, producing a prompt describing the drift a
documentation pass should address. The output goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptResultsPath, "results", config.DefaultScanResultPath, "scan results file")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := scanner.LoadResult(promptResultsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no scan results at %s, run 'crmbl scan' first", promptResultsPath)
		}
		return err
	}

	gen, err := prompt.NewFromFile(cfg.ReadmeTemplate)
	if err != nil {
		return err
	}

	out, err := gen.Render(prompt.Data{
		Root:         cfg.RootPath,
		ManifestPath: cfg.OutputPath,
		Result:       result,
	})
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
