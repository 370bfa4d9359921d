package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/models"
)

// Error variables
var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrReceiverNotSpecified = errors.New("receiver not specified")
	ErrReceiverNotFound     = errors.New("receiver not found")
	ErrInvalidReceiverID    = errors.New("invalid receiver id")
)

// TransactionWriter appends records to the ledger.
type TransactionWriter interface {
	Save(ctx context.Context, fromUser, toUser uuid.UUID, amount float64) (*models.TransactionDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransferService validates transfers and appends them to the ledger.
// There is no balance concept: a transfer is unconditional given a valid
// receiver and a positive amount, and self-transfers are permitted.
type TransferService struct {
	users       UserReader
	ledger      TransactionWriter
	kafkaWriter KafkaWriter
}

// NewTransferService creates a new TransferService.
func NewTransferService(users UserReader, ledger TransactionWriter, kafkaWriter KafkaWriter) *TransferService {
	return &TransferService{
		users:       users,
		ledger:      ledger,
		kafkaWriter: kafkaWriter,
	}
}

// Send resolves the receiver, appends one ledger record and publishes it.
// When both an id and a handle are supplied the id wins and the handle is
// ignored.
func (s *TransferService) Send(ctx context.Context, senderID uuid.UUID, toUserID, toHandle string, amount float64) (*models.TransactionDB, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var receiver *models.UserDB
	var err error
	switch {
	case toUserID != "":
		receiverID, parseErr := uuid.Parse(toUserID)
		if parseErr != nil {
			logger.Log.Warnw("malformed receiver id", "toUserId", toUserID)
			return nil, ErrInvalidReceiverID
		}
		receiver, err = s.users.GetByID(ctx, receiverID)
	case toHandle != "":
		receiver, err = s.users.GetByHandle(ctx, toHandle)
	default:
		return nil, ErrReceiverNotSpecified
	}
	if err != nil {
		logger.Log.Errorw("failed to resolve receiver", "err", err)
		return nil, err
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}

	txn, err := s.ledger.Save(ctx, senderID, receiver.UserID, amount)
	if err != nil {
		logger.Log.Errorw("failed to append transaction", "sender", senderID, "receiver", receiver.UserID, "err", err)
		return nil, err
	}

	s.publishTransaction(ctx, txn)

	return txn, nil
}

// publishTransaction publishes a ledger record to Kafka. Publishing is
// best-effort: failures are logged and never fail the transfer.
func (s *TransferService) publishTransaction(ctx context.Context, txn *models.TransactionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	data, err := json.Marshal(txn)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.TransactionID.String()),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", txn.TransactionID, "amount", txn.Amount)
	}
}
