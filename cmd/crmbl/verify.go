package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/crmbl/pkg/crmbl/manifest"
	"github.com/jamesainslie/crmbl/pkg/crmbl/output"
	"github.com/jamesainslie/crmbl/pkg/crmbl/verifier"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that documented directories have README files",
	Long: `Verify cross-references every manifest entry against its expected README
file on disk and reports the entries whose README is missing or whose
readmePath was never filled in.

Exits 0 when every entry checks out, 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, loadErr := manifest.Load(cfg.OutputPath)
	if loadErr != nil {
		printVerbose("Manifest load failed: %v", loadErr)
		m = nil
	}

	result := verifier.Verify(cfg, m)

	if result.Err != "" {
		return fmt.Errorf("verify: %s", result.Err)
	}

	for _, missing := range result.MissingReadmes {
		printInfo("%s  %s",
			output.ErrorStyle.Render(missing.Directory),
			output.MutedStyle.Render(missing.ExpectedReadme))
	}

	if result.Valid {
		printInfo("%s", output.SuccessStyle.Render(
			fmt.Sprintf("All %d documented directories verified", result.TotalDirectories)))
		return nil
	}

	return fmt.Errorf("%d of %d directories missing READMEs",
		len(result.MissingReadmes), result.TotalDirectories)
}
