package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"practice-reconciliation/internal/domain"
)

// Request names the two ledgers to reconcile, where to write the report and how to bind columns.
type Request struct {
	BankPath     string
	PracticePath string
	OutputPath   string
	Options      domain.Options
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo   TableRepository
	logger *zap.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
// A nil logger disables logging.
func NewReconciliationUseCase(repo TableRepository, logger *zap.Logger) *ReconciliationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationUseCase{repo: repo, logger: logger}
}

// Reconcile loads both ledgers, reconciles them and writes the report to req.OutputPath.
// Nothing is written when loading or reconciling fails.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, req Request) (*domain.Report, error) {
	// Step 1: Data Ingestion
	bank, err := uc.repo.LoadTable(ctx, req.BankPath)
	if err != nil {
		return nil, fmt.Errorf("could not load bank ledger: %w", err)
	}
	uc.logger.Debug("Loaded bank ledger", zap.String("path", req.BankPath), zap.Int("rows", bank.Len()))

	practice, err := uc.repo.LoadTable(ctx, req.PracticePath)
	if err != nil {
		return nil, fmt.Errorf("could not load practice ledger: %w", err)
	}
	uc.logger.Debug("Loaded practice ledger", zap.String("path", req.PracticePath), zap.Int("rows", practice.Len()))

	// Step 2: Matching
	report, err := Reconcile(bank, practice, req.Options)
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	if dups := report.Summary.DuplicateReferences; len(dups) > 0 {
		uc.logger.Warn("References repeat within a ledger; every pairing was emitted",
			zap.Strings("references", dups))
	}

	// Step 3: Persist
	if err := uc.repo.SaveTable(ctx, req.OutputPath, report.Table()); err != nil {
		return nil, fmt.Errorf("could not save reconciliation report: %w", err)
	}

	uc.logger.Info("Reconciliation complete",
		zap.String("output", req.OutputPath),
		zap.Int("rows", report.Summary.OutputRows),
		zap.Int("matched", report.Summary.StatusCounts[domain.StatusMatched]),
		zap.Int("amount_mismatch", report.Summary.StatusCounts[domain.StatusAmountMismatch]),
		zap.Int("missing_in_practice", report.Summary.StatusCounts[domain.StatusMissingInPractice]),
		zap.Int("missing_in_bank", report.Summary.StatusCounts[domain.StatusMissingInBank]),
		zap.Float64("net_difference", report.Summary.NetDifference),
	)

	return report, nil
}
