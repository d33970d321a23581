package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"budget/internal/core"
)

func (a *app) addCommand() *cobra.Command {
	var typ, amount, category, desc, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := core.ParseType(typ)
			if err != nil {
				return err
			}
			amt, err := core.ParseAmount(amount)
			if err != nil {
				return err
			}
			if date == "" {
				date = core.FormatDate(time.Now())
			}

			id, err := a.svc.Record(cmd.Context(), core.Transaction{
				Date:        date,
				Amount:      amt,
				Category:    category,
				Description: desc,
				Type:        t,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction id=%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "income or expense")
	cmd.Flags().StringVar(&amount, "amount", "", "non-negative amount, e.g. 12.50")
	cmd.Flags().StringVar(&category, "category", core.DefaultCategory, "category label")
	cmd.Flags().StringVar(&desc, "desc", "", "free-text description")
	cmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recently recorded transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.ListLimit
			}
			txs, err := a.svc.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range txs {
				fmt.Fprintf(out, "%3d | %s | %-7s | %8s | %s | %s\n",
					t.ID, t.Date, t.Type, core.FormatAmount(t.Amount), t.Category, t.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows (default LIST_LIMIT)")
	return cmd
}

func (a *app) summaryCommand() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total income, expense and net for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.svc.MonthlySummary(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Year: %d, Month: %02d\n", year, month)
			fmt.Fprintf(out, "Income:  %s\n", core.FormatAmount(s.Income))
			fmt.Fprintf(out, "Expense: %s\n", core.FormatAmount(s.Expense))
			fmt.Fprintf(out, "Net:     %s\n", core.FormatAmount(s.Net))
			return nil
		},
	}

	monthFlags(cmd, &year, &month)
	return cmd
}

func (a *app) categoriesCommand() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Per-category totals for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct, err := a.svc.CategoryTotals(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Year: %d, Month: %02d\n", year, month)
			printTotals(out, "Income", ct.Income)
			printTotals(out, "Expense", ct.Expense)
			return nil
		},
	}

	monthFlags(cmd, &year, &month)
	return cmd
}

func (a *app) trendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Income, expense and net for every month on record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			months, err := a.svc.MonthlyTrend(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-7s | %10s | %10s | %10s\n", "Month", "Income", "Expense", "Net")
			for _, m := range months {
				fmt.Fprintf(out, "%04d-%02d | %10s | %10s | %10s\n", m.Year, m.Month,
					core.FormatAmount(m.Income), core.FormatAmount(m.Expense), core.FormatAmount(m.Net))
			}
			return nil
		},
	}
}

func monthFlags(cmd *cobra.Command, year, month *int) {
	cmd.Flags().IntVar(year, "year", 0, "four-digit year")
	cmd.Flags().IntVar(month, "month", 0, "month number 1-12")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
}

func printTotals(w io.Writer, title string, totals map[string]decimal.Decimal) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(totals) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, name := range slices.Sorted(maps.Keys(totals)) {
		fmt.Fprintf(w, "  %-20s %10s\n", name, core.FormatAmount(totals[name]))
	}
}

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import transactions from a CSV file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer f.Close()
				in = f
			}

			res, err := a.svc.ImportCSV(cmd.Context(), in)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d transactions (batch %s)\n", res.Imported, res.BatchID)
			if len(res.Errors) > 0 {
				fmt.Fprintf(out, "%d rows rejected:\n", len(res.Errors))
				for _, rowErr := range res.Errors {
					fmt.Fprintf(out, "  %v\n", rowErr)
				}
			}
			return err
		},
	}
}

func (a *app) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export every transaction as CSV (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := a.svc.ExportCSV(cmd.Context(), cmd.OutOrStdout())
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			n, err := a.svc.ExportCSV(cmd.Context(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", n, args[0])
			return nil
		},
	}
}
