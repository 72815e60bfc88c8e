package reports

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smbooks-backend/internal/models"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(gdb), mock
}

func TestGormStoreCompanyNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := store.Company(7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreCompanyFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "abn"}).
			AddRow(1, "Acme Trading Pty Ltd", "51824753556"))

	company, err := store.Company(1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading Pty Ltd", company.Name)
	assert.Equal(t, "51824753556", company.ABN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreSumCredit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(credit\), 0\) FROM "financial_records" WHERE company_id = \$1 AND date >= \$2 AND date <= \$3 AND type_of_income = \$4`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("5000.00"))

	rng, err := ParseRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)

	total, err := store.SumCredit(1, rng, RecordFilter{IncomeType: IncomeSales})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("5000.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreSumDebitEmptyMatchIsZero(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(debit\), 0\) FROM "financial_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	total, err := store.SumDebit(1, DateRange{}, RecordFilter{AnyExpenseType: true})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreSumGST(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(gst_received\), 0\) AS received, COALESCE\(SUM\(gst_paid\), 0\) AS paid FROM "financial_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"received", "paid"}).AddRow("500.00", "200.00"))

	received, paid, err := store.SumGST(1, DateRange{})
	require.NoError(t, err)
	assert.True(t, received.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, paid.Equal(decimal.RequireFromString("200.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorePayrollTotals(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(gross_wages\), 0\) AS gross, COALESCE\(SUM\(payg_withholding\), 0\) AS withheld, COALESCE\(SUM\(deductions\), 0\) AS deductions FROM "payroll_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"gross", "withheld", "deductions"}).
			AddRow("2000.00", "300.00", "50.00"))

	totals, err := store.PayrollTotals(1, DateRange{})
	require.NoError(t, err)
	assert.True(t, totals.GrossWages.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, totals.PAYGWithholding.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, totals.Deductions.Equal(decimal.RequireFromString("50.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreBalanceLines(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT subcategory, SUM\(amount\) AS total FROM "asset_liabilities" WHERE company_id = \$1 AND category = \$2 GROUP BY "subcategory"`).
		WillReturnRows(sqlmock.NewRows([]string{"subcategory", "total"}).
			AddRow("Cash", "1200.00").
			AddRow("Equipment", "800.00"))

	lines, err := store.BalanceLines(1, models.CategoryAsset, nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Cash", lines[0].Subcategory)
	assert.True(t, lines[0].Total.Equal(decimal.RequireFromString("1200.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2025-03-31")
	assert.NoError(t, err)

	for _, bad := range []string{"", "31-03-2025", "2025/03/31", "2025-13-01", "yesterday"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", bad)
	}
}
