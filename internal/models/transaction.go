package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionDB represents one immutable ledger record. Records are inserted
// exactly once and never updated, deleted or rolled up into a stored balance.
type TransactionDB struct {
	TransactionID uuid.UUID `db:"transaction_id" json:"id"`    // Primary key
	FromUser      string    `db:"from_user" json:"fromUser"`   // Sender user id
	ToUser        string    `db:"to_user" json:"toUser"`       // Receiver user id
	Amount        float64   `db:"amount" json:"amount"`        // Amount sent, always > 0
	Timestamp     time.Time `db:"created_at" json:"timestamp"` // Creation time, immutable
}

// StatsDB holds the aggregate counters for one user's ledger activity.
// All four values are zero when the user has no transactions.
type StatsDB struct {
	TotalSent     float64 `db:"total_sent" json:"total_sent"`
	TotalReceived float64 `db:"total_received" json:"total_received"`
	CountSent     int64   `db:"count_sent" json:"count_sent"`
	CountReceived int64   `db:"count_received" json:"count_received"`
}
