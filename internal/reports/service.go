package reports

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"smbooks-backend/internal/models"
)

// Classification tags with fixed meaning in the statements.
const (
	ExpenseCOGS      = "COGS"
	IncomeSales      = "sales"
	IncomeExport     = "export"
	IncomeGSTFree    = "gst_free"
	IncomePAYGIncome = "payg_income"
)

var (
	// DefaultTaxRate applies to operating profit when the caller does not
	// override it.
	DefaultTaxRate = decimal.RequireFromString("0.10")
	// DefaultInstalmentRate applies to T1 instalment income on the BAS.
	DefaultInstalmentRate = decimal.RequireFromString("0.10")
)

// Service builds financial statements from a ledger store. It never mutates
// data; a statement is returned only when every constituent aggregation
// succeeded.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) company(id uint) (*models.Company, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: company id is required", ErrInvalidInput)
	}
	company, err := s.store.Company(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: looking up company %d: %v", ErrComputationFailed, id, err)
	}
	return company, nil
}

func snapshot(c *models.Company) CompanySnapshot {
	return CompanySnapshot{ID: c.ID, Name: c.Name, ABN: c.ABN, Address: c.Address}
}

func period(rng DateRange) Period {
	return Period{From: rng.From.Format(dateLayout), To: rng.To.Format(dateLayout)}
}

func compErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrComputationFailed, op, err)
}

func statementLines(records []models.FinancialRecord, credit bool) ([]StatementLine, decimal.Decimal) {
	lines := make([]StatementLine, 0, len(records))
	total := decimal.Zero
	for _, r := range records {
		amount := r.Debit
		if credit {
			amount = r.Credit
		}
		lines = append(lines, StatementLine{
			Date:        r.Date.Format(dateLayout),
			Description: r.Description,
			Amount:      amount.Round(2),
		})
		total = total.Add(amount)
	}
	return lines, total.Round(2)
}

// ProfitAndLoss builds an itemized profit and loss statement over an
// inclusive date range. Pass DefaultTaxRate unless the caller overrides it.
func (s *Service) ProfitAndLoss(companyID uint, dateFrom, dateTo string, taxRate decimal.Decimal) (*ProfitLossStatement, error) {
	rng, err := ParseRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate must not be negative", ErrInvalidInput)
	}
	company, err := s.company(companyID)
	if err != nil {
		return nil, err
	}

	incomeRecords, err := s.store.Records(companyID, rng, RecordFilter{AnyIncomeType: true})
	if err != nil {
		return nil, compErr("querying income records", err)
	}
	cogsRecords, err := s.store.Records(companyID, rng, RecordFilter{ExpenseType: ExpenseCOGS})
	if err != nil {
		return nil, compErr("querying cost of goods sold", err)
	}
	expenseRecords, err := s.store.Records(companyID, rng, RecordFilter{AnyExpenseType: true, ExcludeExpenseType: ExpenseCOGS})
	if err != nil {
		return nil, compErr("querying expense records", err)
	}

	stmt := &ProfitLossStatement{
		Company: snapshot(company),
		Period:  period(rng),
		TaxRate: taxRate,
	}
	stmt.IncomeLines, stmt.TotalIncome = statementLines(incomeRecords, true)
	stmt.COGSLines, stmt.TotalCOGS = statementLines(cogsRecords, false)
	stmt.ExpenseLines, stmt.TotalExpenses = statementLines(expenseRecords, false)

	stmt.GrossProfit = stmt.TotalIncome.Sub(stmt.TotalCOGS)
	stmt.OperatingProfit = stmt.GrossProfit.Sub(stmt.TotalExpenses)
	stmt.Tax = stmt.OperatingProfit.Mul(taxRate).Round(2)
	stmt.NetProfitAfterTax = stmt.OperatingProfit.Sub(stmt.Tax)
	return stmt, nil
}

// BalanceSheet builds a point-in-time balance sheet. Equity is always the
// computed difference, so the sheet reconciles by construction.
func (s *Service) BalanceSheet(companyID uint) (*BalanceSheet, error) {
	company, err := s.company(companyID)
	if err != nil {
		return nil, err
	}

	assetLines, err := s.store.BalanceLines(companyID, models.CategoryAsset, nil)
	if err != nil {
		return nil, compErr("grouping assets", err)
	}
	liabilityLines, err := s.store.BalanceLines(companyID, models.CategoryLiability, nil)
	if err != nil {
		return nil, compErr("grouping liabilities", err)
	}
	totalAssets, err := s.store.BalanceTotal(companyID, models.CategoryAsset)
	if err != nil {
		return nil, compErr("summing assets", err)
	}
	totalLiabilities, err := s.store.BalanceTotal(companyID, models.CategoryLiability)
	if err != nil {
		return nil, compErr("summing liabilities", err)
	}

	return &BalanceSheet{
		Company:          snapshot(company),
		AssetLines:       assetLines,
		LiabilityLines:   liabilityLines,
		TotalAssets:      totalAssets.Round(2),
		TotalLiabilities: totalLiabilities.Round(2),
		Equity:           totalAssets.Sub(totalLiabilities).Round(2),
	}, nil
}

// CashFlow sums tagged inflows and outflows over an inclusive date range.
func (s *Service) CashFlow(companyID uint, dateFrom, dateTo string) (*CashFlowStatement, error) {
	rng, err := ParseRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	company, err := s.company(companyID)
	if err != nil {
		return nil, err
	}

	inflow, err := s.store.SumCredit(companyID, rng, RecordFilter{AnyIncomeType: true})
	if err != nil {
		return nil, compErr("summing cash inflow", err)
	}
	outflow, err := s.store.SumDebit(companyID, rng, RecordFilter{AnyExpenseType: true})
	if err != nil {
		return nil, compErr("summing cash outflow", err)
	}

	return &CashFlowStatement{
		Company:     snapshot(company),
		Period:      period(rng),
		CashInflow:  inflow.Round(2),
		CashOutflow: outflow.Round(2),
		NetCashFlow: inflow.Sub(outflow).Round(2),
	}, nil
}

// BAS builds a Business Activity Statement for the period. Pass
// DefaultInstalmentRate unless the caller overrides it.
func (s *Service) BAS(companyID uint, dateFrom, dateTo string, instalmentRate decimal.Decimal) (*BASReport, error) {
	rng, err := ParseRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	if instalmentRate.IsNegative() {
		return nil, fmt.Errorf("%w: instalment rate must not be negative", ErrInvalidInput)
	}
	company, err := s.company(companyID)
	if err != nil {
		return nil, err
	}

	report := &BASReport{Company: snapshot(company), Period: period(rng)}

	sumIncome := func(tag string) (decimal.Decimal, error) {
		return s.store.SumCredit(companyID, rng, RecordFilter{IncomeType: tag})
	}

	if report.GST.G1TotalSales, err = sumIncome(IncomeSales); err != nil {
		return nil, compErr("summing total sales", err)
	}
	if report.GST.G2ExportSales, err = sumIncome(IncomeExport); err != nil {
		return nil, compErr("summing export sales", err)
	}
	if report.GST.G3GSTFreeSales, err = sumIncome(IncomeGSTFree); err != nil {
		return nil, compErr("summing GST-free sales", err)
	}
	report.GST.G1TotalSales = report.GST.G1TotalSales.Round(2)
	report.GST.G2ExportSales = report.GST.G2ExportSales.Round(2)
	report.GST.G3GSTFreeSales = report.GST.G3GSTFreeSales.Round(2)

	received, paid, err := s.store.SumGST(companyID, rng)
	if err != nil {
		return nil, compErr("summing GST", err)
	}
	report.GST.A1GSTOnSales = received.Round(2)
	report.GST.B1GSTOnPurchases = paid.Round(2)

	payroll, err := s.store.PayrollTotals(companyID, rng)
	if err != nil {
		return nil, compErr("summing payroll", err)
	}
	report.PAYGWithholding.W1TotalWages = payroll.GrossWages.Round(2)
	report.PAYGWithholding.W2PAYGWithholding = payroll.PAYGWithholding.Round(2)
	report.PAYGWithholding.OtherWithheld = payroll.Deductions.Round(2)

	instalmentIncome, err := sumIncome(IncomePAYGIncome)
	if err != nil {
		return nil, compErr("summing instalment income", err)
	}
	report.PAYGInstalments.T1InstalmentIncome = instalmentIncome.Round(2)
	report.PAYGInstalments.InstalmentRate = instalmentRate
	report.PAYGInstalments.T11InstalmentAmount = instalmentIncome.Mul(instalmentRate).Round(2)

	report.Summary.GSTPayable = report.GST.A1GSTOnSales.Sub(report.GST.B1GSTOnPurchases)
	report.Summary.TotalWithheld = report.PAYGWithholding.W2PAYGWithholding.Add(report.PAYGWithholding.OtherWithheld)
	report.Summary.NetAmountPayable = report.Summary.GSTPayable.
		Add(report.Summary.TotalWithheld).
		Add(report.PAYGInstalments.T11InstalmentAmount)
	return report, nil
}
