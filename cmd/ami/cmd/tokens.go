package cmd

import (
	"fmt"
	"os"

	"github.com/graeme-hill/ami-go/lib"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	tokens := lib.Tokenize(string(source))
	logger.Debug("tokenized", "file", args[0], "tokens", len(tokens))

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintf(out, "%d\t%s\t%s\n", tok.Offset, tok.Type, tok.Value)
	}
	return nil
}
