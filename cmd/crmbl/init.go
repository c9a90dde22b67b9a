package main

import (
	"github.com/spf13/cobra"

	"github.com/jamesainslie/crmbl/pkg/crmbl/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a default config file",
	Long: `Create a default ` + config.FileName + ` in the given directory (default:
the current directory). Refuses to overwrite an existing config unless
--force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	path, err := config.WriteDefault(dir, initForce)
	if err != nil {
		return err
	}

	printInfo("Created %s", path)
	return nil
}
