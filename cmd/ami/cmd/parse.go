package cmd

import (
	"fmt"
	"os"

	"github.com/graeme-hill/ami-go/lib"
	"github.com/spf13/cobra"
)

var parseFirst bool

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print the parsed statements of a file",
	Long: `Parses FILE and prints one fully parenthesized statement per line.
A syntax error is printed with the offending line and a caret.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseFirst, "first", false, "parse only the first statement")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	file := args[0]
	source, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if parseFirst {
		expr, err := lib.Parse(file, string(source))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, lib.Format(expr))
		return nil
	}

	prog, err := lib.ParseAll(file, string(source))
	if err != nil {
		return err
	}
	logger.Debug("parsed", "file", file, "statements", len(prog.Statements))
	for _, stmt := range prog.Statements {
		fmt.Fprintln(out, lib.Format(stmt))
	}
	return nil
}
