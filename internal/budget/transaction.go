package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The remote API exchanges amounts as JSON numbers, not strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the ISO 8601 day precision used for transaction dates.
const DateLayout = "2006-01-02"

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Categories is the fixed expense category enumeration, in display order.
var Categories = []string{"Food", "Shopping", "Bills", "Travel", "Salary", "Other"}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Type     Type            `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Note     string          `json:"note,omitempty"`
}

// Draft is the user input of the entry form before it becomes a Transaction.
type Draft struct {
	Amount   string
	Type     Type
	Category string
	Note     string
}

// NewTransaction builds a record from form input. The id is the creation time in
// milliseconds and the date is the UTC day of now.
func NewTransaction(d Draft, now time.Time) (Transaction, error) {
	amt, err := ParseAmount(d.Amount)
	if err != nil {
		return Transaction{}, err
	}
	txn := Transaction{
		ID:       now.UnixMilli(),
		Amount:   amt,
		Type:     d.Type,
		Category: d.Category,
		Date:     now.UTC().Format(DateLayout),
		Note:     strings.TrimSpace(d.Note),
	}
	if err := txn.Validate(); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// ParseAmount parses a user-entered decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrAmountRequired
	}
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if amt.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amt, nil
}

// Validate checks the invariants of a record the client is about to send.
// Records read back from the API are never validated.
func (t *Transaction) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Type == TypeExpense && !ValidCategory(t.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	return nil
}

// Signed returns the amount with the direction implied by the type applied.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
