// Package tracker mirrors the remote transaction collection and keeps the session
// gate in front of every call that needs a token.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/simonvc/trackit/internal/budget"
	"github.com/simonvc/trackit/internal/session"
)

// ErrResyncFailed wraps the read that follows a stored write. The record is on
// the server; only the refreshed collection is missing.
var ErrResyncFailed = errors.New("transaction saved but the list could not be reloaded")

// API is the part of the remote service the store reads and writes.
type API interface {
	ListTransactions(ctx context.Context, token string) ([]budget.Transaction, error)
	CreateTransaction(ctx context.Context, token string, txn *budget.Transaction) error
}

// Store caches the last full read of the collection. It never edits records
// locally; every successful write is followed by a fresh read.
type Store struct {
	api  API
	sess *session.Session
	log  zerolog.Logger

	mu      sync.RWMutex
	txns    []budget.Transaction
	fetched bool
}

func New(api API, sess *session.Session, logger zerolog.Logger) *Store {
	return &Store{
		api:  api,
		sess: sess,
		log:  logger,
		txns: []budget.Transaction{},
	}
}

func (s *Store) Session() *session.Session {
	return s.sess
}

// FetchAll replaces the cache with the server's collection. On failure the cache
// keeps its previous contents.
func (s *Store) FetchAll(ctx context.Context) ([]budget.Transaction, error) {
	token, err := s.sess.Authorize()
	if err != nil {
		return nil, err
	}

	txns, err := s.api.ListTransactions(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("fetch transactions failed")
		return nil, fmt.Errorf("fetch transactions: %w", s.sess.Fail(err))
	}

	s.mu.Lock()
	s.txns = txns
	s.fetched = true
	s.mu.Unlock()

	s.log.Debug().Int("count", len(txns)).Msg("transactions fetched")
	return slices.Clone(txns), nil
}

// Append sends txn to the server and then re-reads the whole collection. If the
// write succeeds but the read does not, the error wraps ErrResyncFailed and the
// cache keeps its previous contents.
func (s *Store) Append(ctx context.Context, txn budget.Transaction) ([]budget.Transaction, error) {
	token, err := s.sess.Authorize()
	if err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.api.CreateTransaction(ctx, token, &txn); err != nil {
		s.log.Warn().Err(err).Int64("id", txn.ID).Msg("append transaction failed")
		return nil, fmt.Errorf("append transaction: %w", s.sess.Fail(err))
	}
	s.log.Info().Int64("id", txn.ID).Str("type", string(txn.Type)).Msg("transaction appended")

	txns, err := s.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResyncFailed, err)
	}
	return txns, nil
}

// Transactions returns a copy of the cached collection in fetch order.
func (s *Store) Transactions() []budget.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.txns)
}

// Fetched reports whether at least one read has succeeded.
func (s *Store) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}

// Summary recomputes every aggregate from the cache.
func (s *Store) Summary() budget.Summary {
	return budget.Summarize(s.Transactions())
}
