package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mjarosz/budgetmd/internal/app"
	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/money"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

var (
	vaultDir  string
	dataFile  string
	localeTag string
)

var rootCmd = &cobra.Command{
	Use:   "budgetmd",
	Short: "Markdown-backed personal budget ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func openVault() (*app.App, error) {
	tag := localeTag
	if tag == "" {
		tag = os.Getenv("LANG")
	}

	docs := storage.NewFileStore(afero.NewOsFs(), vaultDir)

	return app.New(docs, dataFile, settings.Default(locale.Detect(tag)), slog.Default())
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE: func(cmd *cobra.Command, _ []string) error {
		vault, err := openVault()
		if err != nil {
			return err
		}

		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().Format(ledger.DateLayout)
		}

		amount, _ := cmd.Flags().GetFloat64("amount")
		typ, _ := cmd.Flags().GetString("type")
		category, _ := cmd.Flags().GetString("category")
		description, _ := cmd.Flags().GetString("description")
		currency, _ := cmd.Flags().GetString("currency")
		excluded, _ := cmd.Flags().GetBool("excluded")

		tx, err := vault.Store().Add(ledger.Candidate{
			Date:             date,
			Amount:           amount,
			Type:             ledger.Type(typ),
			Category:         category,
			Description:      description,
			Currency:         currency,
			ExcludeFromStats: excluded,
		})
		if tx == nil {
			return err
		}

		if err != nil {
			slog.Warn("month document not regenerated", "error", err)
		}

		if err := vault.SaveData(); err != nil {
			return err
		}

		fmt.Printf("added %s: %s %s (%s)\n", tx.ID, tx.Date, money.Format(tx.Amount, tx.Currency), tx.Category)

		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		vault, err := openVault()
		if err != nil {
			return err
		}

		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		category, _ := cmd.Flags().GetString("category")
		typ, _ := cmd.Flags().GetString("type")
		search, _ := cmd.Flags().GetString("search")

		txns := vault.Store().List(ledger.Filter{
			From:     from,
			To:       to,
			Category: category,
			Type:     ledger.Type(typ),
			Search:   search,
		})

		for _, tx := range txns {
			fmt.Printf("%s  %-10s  %-15s  %12s  %s\n",
				tx.Date, tx.Type, tx.Category, money.Format(tx.Amount, tx.Currency), tx.Description)
		}

		fmt.Printf("%d transaction(s)\n", len(txns))

		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a month's totals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		vault, err := openVault()
		if err != nil {
			return err
		}

		now := time.Now()

		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = now.Year()
		}

		month, _ := cmd.Flags().GetInt("month")
		if month == 0 {
			month = int(now.Month())
		}

		s := vault.Store().MonthlySummary(year, month, false)
		cur := vault.Settings().DefaultCurrency

		fmt.Printf("%04d-%02d\n", s.Year, s.Month)
		fmt.Printf("  income:   %s\n", money.Format(s.TotalIncome, cur))
		fmt.Printf("  expenses: %s\n", money.Format(s.TotalExpense, cur))
		fmt.Printf("  balance:  %s\n", money.FormatSigned(s.Balance, cur))
		fmt.Printf("  transactions: %d\n", s.TransactionCount)

		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import hand-edited document rows into the ledger",
	RunE: func(_ *cobra.Command, _ []string) error {
		vault, err := openVault()
		if err != nil {
			return err
		}

		n, err := vault.SyncFromDocuments()
		if err != nil {
			return err
		}

		fmt.Printf("imported %d transaction(s)\n", n)

		return nil
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Materialize due recurring transactions",
	RunE: func(_ *cobra.Command, _ []string) error {
		vault, err := openVault()
		if err != nil {
			return err
		}

		n, err := vault.Backfill()
		if err != nil {
			return err
		}

		fmt.Printf("added %d recurring transaction(s)\n", n)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultDir, "dir", ".", "vault directory")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "budget-data.json", "ledger data file, relative to the vault")
	rootCmd.PersistentFlags().StringVar(&localeTag, "locale", "", "locale override (en, pl)")

	addCmd.Flags().String("date", "", "date (YYYY-MM-DD, default today)")
	addCmd.Flags().Float64("amount", 0, "amount, positive")
	addCmd.Flags().String("type", "expense", "income, expense or investment")
	addCmd.Flags().String("category", "other-expense", "category id")
	addCmd.Flags().String("description", "", "description")
	addCmd.Flags().String("currency", "", "3-letter code (default from settings)")
	addCmd.Flags().Bool("excluded", false, "exclude from statistics")

	listCmd.Flags().String("from", "", "start date (inclusive)")
	listCmd.Flags().String("to", "", "end date (inclusive)")
	listCmd.Flags().String("category", "", "category id")
	listCmd.Flags().String("type", "", "income, expense, investment or all")
	listCmd.Flags().String("search", "", "substring over description and category")

	summaryCmd.Flags().Int("year", 0, "year (default current)")
	summaryCmd.Flags().Int("month", 0, "month 1-12 (default current)")

	rootCmd.AddCommand(addCmd, listCmd, summaryCmd, syncCmd, backfillCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
