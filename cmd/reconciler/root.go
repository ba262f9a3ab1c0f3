package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"practice-reconciliation/internal/config"
	"practice-reconciliation/internal/domain"
	"practice-reconciliation/internal/gateway"
	"practice-reconciliation/internal/logger"
	"practice-reconciliation/internal/usecase"
)

func newRootCmd() *cobra.Command {
	var printSummary bool

	cmd := &cobra.Command{
		Use:   "reconciler <bank-file> <practice-file> <output-file>",
		Short: "Reconcile bank and practice ledgers",
		Long: `Reconcile a bank ledger against a practice ledger.

Rows are matched on their reference column and amounts are compared within
a tolerance. The output lists every reference with both amounts, the
difference (bank minus practice) and a status: matched, amount_mismatch,
missing_in_practice or missing_in_bank.

Input and output files may be Excel workbooks (.xlsx) or CSV files.

Examples:
  # Default Reference/Amount columns, one cent tolerance
  reconciler bank.xlsx practice.xlsx report.xlsx

  # Custom column names and a wider tolerance
  reconciler bank.csv practice.xlsx report.xlsx \
    --bank-reference TxRef --practice-amount Paid --tolerance 0.05`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, args, printSummary)
		},
	}

	flags := cmd.Flags()
	flags.String("bank-reference", domain.DefaultReferenceColumn, "Reference column in the bank file")
	flags.String("practice-reference", domain.DefaultReferenceColumn, "Reference column in the practice file")
	flags.String("bank-amount", domain.DefaultAmountColumn, "Amount column in the bank file")
	flags.String("practice-amount", domain.DefaultAmountColumn, "Amount column in the practice file")
	flags.Float64("tolerance", domain.DefaultTolerance, "Allowed difference between amounts to still consider them a match")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.BoolVar(&printSummary, "summary", false, "Print a JSON summary of the reconciliation to stdout")

	return cmd
}

func runReconcile(cmd *cobra.Command, args []string, printSummary bool) error {
	bankPath, practicePath, outputPath := args[0], args[1], args[2]

	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()
	l = logger.WithRunID(l)

	l.Info("Starting reconciliation",
		zap.String("bank", bankPath),
		zap.String("practice", practicePath),
		zap.Float64("tolerance", cfg.Tolerance),
	)

	// --- Dependency Injection (Wiring the application) ---
	repo := gateway.NewFileTableRepository()
	reconciliationUseCase := usecase.NewReconciliationUseCase(repo, l)

	report, err := reconciliationUseCase.Reconcile(cmd.Context(), usecase.Request{
		BankPath:     bankPath,
		PracticePath: practicePath,
		OutputPath:   outputPath,
		Options:      cfg.Options(),
	})
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return err
	}

	// --- Present the Output ---
	out := cmd.OutOrStdout()
	if printSummary {
		summary, err := json.MarshalIndent(report.Summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to generate JSON summary: %w", err)
		}
		fmt.Fprintln(out, string(summary))
	}
	fmt.Fprintf(out, "Reconciliation written to %s\n", outputPath)
	return nil
}
