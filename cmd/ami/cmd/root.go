package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/graeme-hill/ami-go/config"
	"github.com/graeme-hill/ami-go/lib"
	"github.com/graeme-hill/ami-go/logs"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "ami",
	Short: "Tokenize, parse and check expression scripts",
	Long: `ami reads scripts written in a small expression language of
arithmetic, comparisons, conditionals, assignments and function
definitions.

Commands:
  tokens  - print the token stream of a file
  parse   - print the parsed statements of a file
  check   - load a scripts directory and print a report
  store   - keep validated scripts in sqlite or postgres`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

// Execute runs the command line and prints a failure, rendered with its
// source position when it came from the parser.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $AMI_CONFIG or ./ami.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, logCloser, err = logs.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "scripts", cfg.Scripts.Dir, "store", cfg.Store.Driver)
	return nil
}

func printError(w io.Writer, err error) {
	var perr *lib.Error
	if errors.As(err, &perr) {
		// already ends with the caret line
		fmt.Fprint(w, lib.RenderError(err))
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
