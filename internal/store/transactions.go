package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
)

func (s *Store) CreateTransaction(ctx context.Context, userID int64, txn *budget.Transaction) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = ? AND id = ?`, userID, txn.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check transaction: %w", err)
	}
	if exists > 0 {
		return ErrDuplicateTransaction
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, id, amount, type, category, date, note) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, txn.ID, txn.Amount.String(), string(txn.Type), txn.Category, txn.Date, txn.Note,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListTransactions returns the user's records in insertion order.
func (s *Store) ListTransactions(ctx context.Context, userID int64) ([]budget.Transaction, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, amount, type, category, date, note FROM transactions WHERE user_id = ? ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []budget.Transaction{}
	for rows.Next() {
		var t budget.Transaction
		var amount, typ string
		if err := rows.Scan(&t.ID, &amount, &typ, &t.Category, &t.Date, &t.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount of %d: %w", t.ID, err)
		}
		t.Type = budget.Type(typ)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
