package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/models"
)

// TransactionReader reads a user's ledger records and aggregates.
type TransactionReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
	GetStatsByUser(ctx context.Context, userID uuid.UUID) (*models.StatsDB, error)
}

// LedgerService exposes per-user history and aggregate stats. The ledger is
// the source of truth; both operations are pure reads.
type LedgerService struct {
	reader TransactionReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(reader TransactionReader) *LedgerService {
	return &LedgerService{reader: reader}
}

// History returns the user's transactions, most recent first.
func (s *LedgerService) History(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	txns, err := s.reader.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "err", err)
		return nil, err
	}
	return txns, nil
}

// Stats returns the four aggregate counters for the user.
func (s *LedgerService) Stats(ctx context.Context, userID uuid.UUID) (*models.StatsDB, error) {
	stats, err := s.reader.GetStatsByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to aggregate transactions", "userID", userID, "err", err)
		return nil, err
	}
	return stats, nil
}
