package budget

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(id int64, typ Type, amount, date, category string) Transaction {
	return Transaction{ID: id, Type: typ, Amount: dec(amount), Date: date, Category: category}
}

func sample() []Transaction {
	return []Transaction{
		txn(1, TypeIncome, "100", "2024-01-01", "Salary"),
		txn(2, TypeExpense, "40", "2024-01-02", "Food"),
	}
}

func TestSummarizeIncomeThenFood(t *testing.T) {
	s := Summarize(sample())

	if !s.Totals.Balance.Equal(dec("60")) {
		t.Errorf("balance = %s, want 60", s.Totals.Balance)
	}
	food := CategoryTotalsMap(sample())["Food"]
	if !food.Equal(dec("40")) {
		t.Errorf("Food = %s, want 40", food)
	}
	want := []string{"100", "60"}
	if len(s.Series) != len(want) {
		t.Fatalf("series length = %d, want %d", len(s.Series), len(want))
	}
	for i, w := range want {
		if !s.Series[i].Balance.Equal(dec(w)) {
			t.Errorf("series[%d] = %s, want %s", i, s.Series[i].Balance, w)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := Summarize(nil)

	for name, v := range map[string]decimal.Decimal{
		"income":  s.Totals.Income,
		"expense": s.Totals.Expense,
		"balance": s.Totals.Balance,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
	if len(s.Categories) != len(Categories) {
		t.Fatalf("categories = %d, want %d", len(s.Categories), len(Categories))
	}
	for i, ct := range s.Categories {
		if ct.Category != Categories[i] {
			t.Errorf("categories[%d] = %s, want %s", i, ct.Category, Categories[i])
		}
		if !ct.Amount.IsZero() {
			t.Errorf("%s = %s, want 0", ct.Category, ct.Amount)
		}
	}
	if s.Series == nil {
		t.Error("series is nil, want empty slice")
	}
	if len(s.Series) != 0 {
		t.Errorf("series length = %d, want 0", len(s.Series))
	}
}

func mixed() []Transaction {
	return []Transaction{
		txn(1, TypeExpense, "12.50", "2024-03-05", "Travel"),
		txn(2, TypeIncome, "2500", "2024-03-01", "Salary"),
		txn(3, TypeExpense, "99.99", "2024-03-02", "Bills"),
		txn(4, TypeExpense, "7.25", "2024-03-02", "Food"),
		txn(5, TypeIncome, "10", "2024-03-09", "Gift"),
		txn(6, TypeExpense, "300", "2024-03-04", "Shopping"),
	}
}

func TestTotalsIdentity(t *testing.T) {
	for _, txns := range [][]Transaction{nil, sample(), mixed()} {
		tot := ComputeTotals(txns)
		if !tot.Income.Sub(tot.Expense).Equal(tot.Balance) {
			t.Errorf("income - expense = %s, balance = %s", tot.Income.Sub(tot.Expense), tot.Balance)
		}
	}
}

func TestCategoryTotalsSumToExpense(t *testing.T) {
	txns := mixed()
	sum := decimal.Zero
	for _, ct := range CategoryTotals(txns) {
		if ValidCategory(ct.Category) {
			sum = sum.Add(ct.Amount)
		}
	}
	if want := ComputeTotals(txns).Expense; !sum.Equal(want) {
		t.Errorf("category sum = %s, want %s", sum, want)
	}
}

func TestCategoryTotalsIgnoresIncome(t *testing.T) {
	m := CategoryTotalsMap(mixed())
	if !m["Salary"].IsZero() {
		t.Errorf("Salary = %s, want 0 (income excluded)", m["Salary"])
	}
	if _, ok := m["Gift"]; ok {
		t.Error("income-only category Gift should not appear")
	}
}

func TestCategoryTotalsExtraBucket(t *testing.T) {
	txns := []Transaction{
		txn(1, TypeExpense, "5", "2024-01-01", "Pets"),
		txn(2, TypeExpense, "3", "2024-01-02", "Gym"),
		txn(3, TypeExpense, "2", "2024-01-03", "Pets"),
	}
	got := CategoryTotals(txns)
	if len(got) != len(Categories)+2 {
		t.Fatalf("len = %d, want %d", len(got), len(Categories)+2)
	}
	if got[len(Categories)].Category != "Pets" || !got[len(Categories)].Amount.Equal(dec("7")) {
		t.Errorf("first extra = %+v, want Pets 7", got[len(Categories)])
	}
	if got[len(Categories)+1].Category != "Gym" {
		t.Errorf("second extra = %s, want Gym", got[len(Categories)+1].Category)
	}
}

func TestRunningBalanceOrder(t *testing.T) {
	series := RunningBalance(mixed())
	if len(series) != len(mixed()) {
		t.Fatalf("series length = %d, want %d", len(series), len(mixed()))
	}
	wantDates := []string{"2024-03-01", "2024-03-02", "2024-03-02", "2024-03-04", "2024-03-05", "2024-03-09"}
	wantBal := []string{"2500", "2400.01", "2392.76", "2092.76", "2080.26", "2090.26"}
	for i := range series {
		if series[i].Date != wantDates[i] {
			t.Errorf("series[%d].Date = %s, want %s", i, series[i].Date, wantDates[i])
		}
		if !series[i].Balance.Equal(dec(wantBal[i])) {
			t.Errorf("series[%d].Balance = %s, want %s", i, series[i].Balance, wantBal[i])
		}
	}
	if last := series[len(series)-1].Balance; !last.Equal(ComputeTotals(mixed()).Balance) {
		t.Errorf("last point = %s, want balance %s", last, ComputeTotals(mixed()).Balance)
	}
}

func TestRunningBalanceStableTies(t *testing.T) {
	txns := []Transaction{
		txn(1, TypeExpense, "1", "2024-05-01", "Food"),
		txn(2, TypeIncome, "10", "2024-05-01", "Salary"),
	}
	series := RunningBalance(txns)
	if !series[0].Balance.Equal(dec("-1")) || !series[1].Balance.Equal(dec("9")) {
		t.Errorf("series = %v, want [-1 9] in fetch order", series)
	}
}

func TestAggregatesDoNotMutateInput(t *testing.T) {
	txns := mixed()
	before := mixed()

	first := Summarize(txns)
	second := Summarize(txns)

	for i := range txns {
		if txns[i].ID != before[i].ID {
			t.Fatalf("input reordered at %d: got id %d, want %d", i, txns[i].ID, before[i].ID)
		}
	}
	if !first.Totals.Balance.Equal(second.Totals.Balance) {
		t.Error("balance differs between runs")
	}
	for i := range first.Series {
		if first.Series[i].Date != second.Series[i].Date || !first.Series[i].Balance.Equal(second.Series[i].Balance) {
			t.Errorf("series[%d] differs between runs", i)
		}
	}
	for i := range first.Categories {
		if !first.Categories[i].Amount.Equal(second.Categories[i].Amount) {
			t.Errorf("category %s differs between runs", first.Categories[i].Category)
		}
	}
}

func TestRecentReversesFetchOrder(t *testing.T) {
	txns := mixed()
	got := Recent(txns)
	for i := range got {
		if got[i].ID != txns[len(txns)-1-i].ID {
			t.Errorf("recent[%d] = %d, want %d", i, got[i].ID, txns[len(txns)-1-i].ID)
		}
	}
	if txns[0].ID != 1 {
		t.Error("Recent modified its input")
	}
}
