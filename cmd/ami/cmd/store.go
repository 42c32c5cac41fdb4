package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/graeme-hill/ami-go/lib"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep validated scripts in a database",
	Long: `Stores scripts in the database named by the [store] section of the
config. Only scripts that parse are accepted.`,
}

var storePutCmd = &cobra.Command{
	Use:   "put FILE...",
	Short: "Validate and save script files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStorePut,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scripts",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the source of a stored script",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreShow,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a stored script",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

func init() {
	storeCmd.AddCommand(storePutCmd, storeListCmd, storeShowCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

func openStore(ctx context.Context) (*lib.Store, error) {
	return lib.OpenStore(ctx, cfg.Store.Driver, cfg.Store.DSN, logger)
}

func runStorePut(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, file := range args {
		script, err := lib.ReadScriptFromFile(file)
		if err != nil {
			return err
		}
		saved, err := store.Save(ctx, script.Name, script.Source)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", saved.Name, saved.ID)
	}
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	scripts, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Name, s.ID, s.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Load(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.Source)
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
