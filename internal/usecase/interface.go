package usecase

import (
	"context"

	"practice-reconciliation/internal/domain"
)

// TableRepository defines the interface for loading and persisting ledger tables.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TableRepository
type TableRepository interface {
	LoadTable(ctx context.Context, path string) (*domain.Table, error)
	SaveTable(ctx context.Context, path string, table *domain.Table) error
}
