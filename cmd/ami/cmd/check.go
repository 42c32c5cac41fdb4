package cmd

import (
	"github.com/graeme-hill/ami-go/lib"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [DIR]",
	Short: "Load a scripts directory and print a report",
	Long: `Loads every script in DIR (default: the configured scripts directory)
and prints the statements, functions and variables of each one. The first
script that fails to parse or defines a function twice stops the check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := cfg.Scripts.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	scripts, err := lib.ReadScriptsDir(dir, cfg.Scripts.Extension, logger)
	if err != nil {
		return err
	}
	logger.Info("scripts checked", "dir", dir, "count", len(scripts))

	return lib.WriteReport(cmd.OutOrStdout(), scripts)
}
