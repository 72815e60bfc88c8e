package reports

import "github.com/shopspring/decimal"

// CompanySnapshot is the header block every statement carries.
type CompanySnapshot struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	ABN     string `json:"abn"`
	Address string `json:"address"`
}

type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StatementLine is one itemized row of a statement section.
type StatementLine struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type ProfitLossStatement struct {
	Company CompanySnapshot `json:"company"`
	Period  Period          `json:"period"`

	IncomeLines  []StatementLine `json:"income_lines"`
	COGSLines    []StatementLine `json:"cogs_lines"`
	ExpenseLines []StatementLine `json:"expense_lines"`

	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalCOGS         decimal.Decimal `json:"total_cogs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	OperatingProfit   decimal.Decimal `json:"operating_profit"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	Tax               decimal.Decimal `json:"tax"`
	NetProfitAfterTax decimal.Decimal `json:"net_profit_after_tax"`
}

type BalanceSheet struct {
	Company CompanySnapshot `json:"company"`

	AssetLines     []BalanceLine `json:"asset_lines"`
	LiabilityLines []BalanceLine `json:"liability_lines"`

	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	Equity           decimal.Decimal `json:"equity"` // always total_assets - total_liabilities
}

type CashFlowStatement struct {
	Company CompanySnapshot `json:"company"`
	Period  Period          `json:"period"`

	CashInflow  decimal.Decimal `json:"cash_inflow"`
	CashOutflow decimal.Decimal `json:"cash_outflow"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
}

// BASReport follows the ATO label layout: G fields for GST turnover, 1A/1B
// for GST collected/paid, W fields for withholding, T fields for instalments.
type BASReport struct {
	Company CompanySnapshot `json:"company"`
	Period  Period          `json:"period"`

	GST struct {
		G1TotalSales     decimal.Decimal `json:"g1_total_sales"`
		G2ExportSales    decimal.Decimal `json:"g2_export_sales"`
		G3GSTFreeSales   decimal.Decimal `json:"g3_gst_free_sales"`
		A1GSTOnSales     decimal.Decimal `json:"1a_gst_on_sales"`
		B1GSTOnPurchases decimal.Decimal `json:"1b_gst_on_purchases"`
	} `json:"gst"`

	PAYGWithholding struct {
		W1TotalWages      decimal.Decimal `json:"w1_total_wages"`
		W2PAYGWithholding decimal.Decimal `json:"w2_payg_withholding"`
		OtherWithheld     decimal.Decimal `json:"other_withheld"`
	} `json:"payg_withholding"`

	PAYGInstalments struct {
		T1InstalmentIncome  decimal.Decimal `json:"t1_instalment_income"`
		InstalmentRate      decimal.Decimal `json:"instalment_rate"`
		T11InstalmentAmount decimal.Decimal `json:"t11_instalment_amount"`
	} `json:"payg_instalments"`

	Summary struct {
		GSTPayable       decimal.Decimal `json:"gst_payable"`
		TotalWithheld    decimal.Decimal `json:"total_withheld"`
		NetAmountPayable decimal.Decimal `json:"net_amount_payable"`
	} `json:"summary"`
}
