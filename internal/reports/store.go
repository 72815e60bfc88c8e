package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"smbooks-backend/internal/models"
)

// DateRange is an inclusive day range. Nil bounds mean unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// RecordFilter narrows financial records by their classification tags.
// Zero value matches every record of the company.
type RecordFilter struct {
	IncomeType         string // match this income tag exactly
	ExpenseType        string // match this expense tag exactly
	AnyIncomeType      bool   // match any record carrying an income tag
	AnyExpenseType     bool   // match any record carrying an expense tag
	ExcludeExpenseType string // drop records carrying this expense tag
}

// PayrollTotals are the summed payroll figures a BAS report needs.
type PayrollTotals struct {
	GrossWages      decimal.Decimal
	PAYGWithholding decimal.Decimal
	Deductions      decimal.Decimal
}

// BalanceLine is one subcategory total of the balance sheet.
type BalanceLine struct {
	Subcategory string          `json:"subcategory"`
	Total       decimal.Decimal `json:"total"`
}

// Store is the ledger-store collaborator the statement builders read from.
// Implementations must return ErrNotFound (wrapped) for a missing company and
// zero totals, not errors, when nothing matches a filter.
type Store interface {
	Company(id uint) (*models.Company, error)
	Records(companyID uint, rng DateRange, f RecordFilter) ([]models.FinancialRecord, error)
	SumCredit(companyID uint, rng DateRange, f RecordFilter) (decimal.Decimal, error)
	SumDebit(companyID uint, rng DateRange, f RecordFilter) (decimal.Decimal, error)
	SumGST(companyID uint, rng DateRange) (received, paid decimal.Decimal, err error)
	PayrollTotals(companyID uint, rng DateRange) (PayrollTotals, error)
	BalanceTotal(companyID uint, category models.BalanceCategory) (decimal.Decimal, error)
	BalanceLines(companyID uint, category models.BalanceCategory, extra map[string]any) ([]BalanceLine, error)
}

const dateLayout = "2006-01-02"

// ParseDate parses a mandatory YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseRange parses a mandatory date range and rejects inverted bounds.
func ParseRange(from, to string) (DateRange, error) {
	f, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return DateRange{}, err
	}
	if t.Before(f) {
		return DateRange{}, fmt.Errorf("%w: date_to %s is before date_from %s", ErrInvalidInput, to, from)
	}
	return DateRange{From: &f, To: &t}, nil
}

func (r DateRange) String() string {
	from, to := "", ""
	if r.From != nil {
		from = r.From.Format(dateLayout)
	}
	if r.To != nil {
		to = r.To.Format(dateLayout)
	}
	return from + ".." + to
}
