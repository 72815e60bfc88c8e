package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComputeNetPay applies the payroll invariant:
// net pay = gross wages - PAYG withholding - deductions.
// Storage never enforces this, so every entry path must go through here.
func ComputeNetPay(gross, paygWithholding, deductions decimal.Decimal) (decimal.Decimal, error) {
	if !gross.IsPositive() {
		return decimal.Zero, fmt.Errorf("gross wages must be greater than zero")
	}
	if paygWithholding.IsNegative() || deductions.IsNegative() {
		return decimal.Zero, fmt.Errorf("withholding and deductions must not be negative")
	}
	net := gross.Sub(paygWithholding).Sub(deductions).Round(2)
	if net.IsNegative() {
		return decimal.Zero, fmt.Errorf("withholding and deductions exceed gross wages")
	}
	return net, nil
}
