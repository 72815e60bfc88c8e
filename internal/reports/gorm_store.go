package reports

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smbooks-backend/internal/models"
)

// GormStore implements Store against the relational schema. The handle is
// injected per service, never reached through a package global.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Company(id uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &company, nil
}

func (s *GormStore) recordQuery(companyID uint, rng DateRange, f RecordFilter) *gorm.DB {
	q := s.db.Model(&models.FinancialRecord{}).Where("company_id = ?", companyID)
	if rng.From != nil {
		q = q.Where("date >= ?", *rng.From)
	}
	if rng.To != nil {
		q = q.Where("date <= ?", *rng.To)
	}
	if f.AnyIncomeType {
		q = q.Where("type_of_income IS NOT NULL AND type_of_income <> ''")
	}
	if f.IncomeType != "" {
		q = q.Where("type_of_income = ?", f.IncomeType)
	}
	if f.AnyExpenseType {
		q = q.Where("type_of_expense IS NOT NULL AND type_of_expense <> ''")
	}
	if f.ExpenseType != "" {
		q = q.Where("type_of_expense = ?", f.ExpenseType)
	}
	if f.ExcludeExpenseType != "" {
		q = q.Where("type_of_expense <> ?", f.ExcludeExpenseType)
	}
	return q
}

func (s *GormStore) Records(companyID uint, rng DateRange, f RecordFilter) ([]models.FinancialRecord, error) {
	var records []models.FinancialRecord
	err := s.recordQuery(companyID, rng, f).Order("date asc, id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormStore) SumCredit(companyID uint, rng DateRange, f RecordFilter) (decimal.Decimal, error) {
	return s.sumColumn("credit", companyID, rng, f)
}

func (s *GormStore) SumDebit(companyID uint, rng DateRange, f RecordFilter) (decimal.Decimal, error) {
	return s.sumColumn("debit", companyID, rng, f)
}

func (s *GormStore) sumColumn(column string, companyID uint, rng DateRange, f RecordFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.recordQuery(companyID, rng, f).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *GormStore) SumGST(companyID uint, rng DateRange) (decimal.Decimal, decimal.Decimal, error) {
	type gstRow struct {
		Received decimal.Decimal `gorm:"column:received"`
		Paid     decimal.Decimal `gorm:"column:paid"`
	}
	var row gstRow
	err := s.recordQuery(companyID, rng, RecordFilter{}).
		Select("COALESCE(SUM(gst_received), 0) AS received, COALESCE(SUM(gst_paid), 0) AS paid").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Received, row.Paid, nil
}

func (s *GormStore) PayrollTotals(companyID uint, rng DateRange) (PayrollTotals, error) {
	q := s.db.Model(&models.PayrollRecord{}).Where("company_id = ?", companyID)
	if rng.From != nil {
		q = q.Where("date >= ?", *rng.From)
	}
	if rng.To != nil {
		q = q.Where("date <= ?", *rng.To)
	}

	type payrollRow struct {
		Gross      decimal.Decimal `gorm:"column:gross"`
		Withheld   decimal.Decimal `gorm:"column:withheld"`
		Deductions decimal.Decimal `gorm:"column:deductions"`
	}
	var row payrollRow
	err := q.Select("COALESCE(SUM(gross_wages), 0) AS gross, COALESCE(SUM(payg_withholding), 0) AS withheld, COALESCE(SUM(deductions), 0) AS deductions").
		Scan(&row).Error
	if err != nil {
		return PayrollTotals{}, err
	}
	return PayrollTotals{
		GrossWages:      row.Gross,
		PAYGWithholding: row.Withheld,
		Deductions:      row.Deductions,
	}, nil
}

func (s *GormStore) BalanceTotal(companyID uint, category models.BalanceCategory) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.AssetLiability{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("company_id = ? AND category = ?", companyID, category).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// BalanceLines groups amounts by subcategory. Extra equality filters are
// merged in by column name, mirroring the ad hoc filters callers pass.
func (s *GormStore) BalanceLines(companyID uint, category models.BalanceCategory, extra map[string]any) ([]BalanceLine, error) {
	q := s.db.Model(&models.AssetLiability{}).
		Select("subcategory, SUM(amount) AS total").
		Where("company_id = ? AND category = ?", companyID, category)
	if len(extra) > 0 {
		q = q.Where(extra)
	}

	var lines []BalanceLine
	if err := q.Group("subcategory").Order("subcategory asc").Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
