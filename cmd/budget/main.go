package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"budget/internal/backend"
	"budget/internal/cli"
	"budget/internal/config"
	applog "budget/internal/log"
	"budget/internal/services"
)

func main() {
	if err := execute(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	dbPath     string

	stdin   io.Reader
	cfg     *config.Config
	svc     *services.TransactionService
	cleanup backend.CleanupFunc
}

func execute(args []string, stdin io.Reader, stdout io.Writer) error {
	a := &app{stdin: stdin}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "budget",
		Short: "Record income and expenses and report monthly totals",
		Long: `Budget keeps a ledger of income and expense transactions in a SQLite file,
reports monthly summaries and per-category totals, and moves transactions
in and out of CSV.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "path to the SQLite database file (overrides SQLITE_DB_PATH)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "optional config file (yaml, json or toml)")

	root.AddCommand(
		a.addCommand(),
		a.listCommand(),
		a.summaryCommand(),
		a.categoriesCommand(),
		a.trendCommand(),
		a.importCommand(),
		a.exportCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.SQLiteDBPath = a.dbPath
	}
	a.cfg = cfg

	logger := cli.SetupLogger(cfg.LogLevel, applog.ComponentCLI)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(cmd.Context(), bcfg)
	if err != nil {
		return err
	}
	a.svc = res.Service
	a.cleanup = res.Cleanup
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}
