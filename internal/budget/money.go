package budget

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency matches the rupee amounts the hosted API serves.
const DefaultCurrency = money.INR

// ValidCurrency reports whether code is an ISO 4217 code go-money knows.
func ValidCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// FormatMoney renders amount in currency, e.g. "₹1,250.00". Unknown currencies fall
// back to the plain decimal with two places.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatSigned prefixes "+" for income and "-" for expense to the absolute amount.
func FormatSigned(t Transaction, currency string) string {
	if t.Type == TypeIncome {
		return "+" + FormatMoney(t.Amount, currency)
	}
	return "-" + FormatMoney(t.Amount, currency)
}
