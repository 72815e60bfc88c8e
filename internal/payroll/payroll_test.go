package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeNetPay(t *testing.T) {
	net, err := ComputeNetPay(d("2000"), d("300"), d("50"))
	require.NoError(t, err)
	assert.True(t, net.Equal(d("1650.00")), "net %s", net)

	// superannuation is on top of gross, never part of net pay
	net, err = ComputeNetPay(d("1234.56"), d("0"), d("0"))
	require.NoError(t, err)
	assert.True(t, net.Equal(d("1234.56")))
}

func TestComputeNetPayExactCents(t *testing.T) {
	net, err := ComputeNetPay(d("999.99"), d("0.33"), d("0.33"))
	require.NoError(t, err)
	assert.True(t, net.Equal(d("999.33")), "net %s", net)
}

func TestComputeNetPayRejectsBadInput(t *testing.T) {
	_, err := ComputeNetPay(d("0"), d("0"), d("0"))
	assert.Error(t, err)

	_, err = ComputeNetPay(d("-100"), d("0"), d("0"))
	assert.Error(t, err)

	_, err = ComputeNetPay(d("1000"), d("-1"), d("0"))
	assert.Error(t, err)

	_, err = ComputeNetPay(d("1000"), d("600"), d("500"))
	assert.Error(t, err, "deductions beyond gross must be rejected")
}
