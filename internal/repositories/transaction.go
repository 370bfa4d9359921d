package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/models"
)

type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Save appends one record to the ledger and returns it with the assigned id
// and timestamp. The ledger is write-once: no update or delete exists.
func (r *TransactionWriteRepository) Save(ctx context.Context, fromUser, toUser uuid.UUID, amount float64) (*models.TransactionDB, error) {
	const query = `
		INSERT INTO transactions (from_user, to_user, amount)
		VALUES ($1, $2, $3)
		RETURNING transaction_id, from_user, to_user, amount, created_at
	`
	args := []any{fromUser, toUser, amount}

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, args...)

	logger.Log.Infow("transactions insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}

type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUser returns every record where the user is sender or receiver,
// most recent first.
func (r *TransactionReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, from_user, to_user, amount, created_at
		FROM transactions
		WHERE from_user = $1 OR to_user = $1
		ORDER BY created_at DESC
	`

	txns := []models.TransactionDB{}
	err := r.db.SelectContext(ctx, &txns, query, userID)

	logger.Log.Infow("transactions select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"rows", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return txns, nil
}

// GetStatsByUser computes the four aggregate counters in a single pass.
// A user with no transactions gets zeros, never NULLs.
func (r *TransactionReadRepository) GetStatsByUser(ctx context.Context, userID uuid.UUID) (*models.StatsDB, error) {
	const query = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE from_user = $1), 0) AS total_sent,
			COALESCE(SUM(amount) FILTER (WHERE to_user = $1), 0) AS total_received,
			COUNT(*) FILTER (WHERE from_user = $1) AS count_sent,
			COUNT(*) FILTER (WHERE to_user = $1) AS count_received
		FROM transactions
		WHERE from_user = $1 OR to_user = $1
	`

	var stats models.StatsDB
	err := r.db.GetContext(ctx, &stats, query, userID)

	logger.Log.Infow("transactions aggregate",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", stats,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
