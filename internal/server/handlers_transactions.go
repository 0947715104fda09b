package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/simonvc/trackit/internal/budget"
)

// authorize resolves the token query parameter to a user, answering 401 itself
// when it cannot.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := s.store.UserForToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		status := mapError(err)
		if status == http.StatusUnauthorized {
			writeError(w, status, "Invalid or expired token")
		} else {
			writeError(w, status, err.Error())
		}
		return 0, false
	}
	return userID, true
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r)
	if !ok {
		return
	}

	txns, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("list transactions")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var txn budget.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := checkRecord(&txn); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.CreateTransaction(r.Context(), userID, &txn); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Transaction added"})
}

// checkRecord is the server's own acceptance rule. Unlike the client form it
// accepts any category, which is how foreign categories reach the breakdown.
func checkRecord(t *budget.Transaction) error {
	switch {
	case t.ID <= 0:
		return budget.ErrInvalidID
	case t.Amount.IsNegative():
		return budget.ErrNegativeAmount
	case !t.Type.Valid():
		return budget.ErrInvalidType
	case strings.TrimSpace(t.Category) == "":
		return fmt.Errorf("category is required")
	}
	if _, err := time.Parse(budget.DateLayout, t.Date); err != nil {
		return budget.ErrInvalidDate
	}
	return nil
}
