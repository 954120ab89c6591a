package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoleSet(t *testing.T) {
	s := NewRoleSet(RoleMentor, RoleFounder)
	assert.True(t, s.Has(RoleFounder))
	assert.False(t, s.Has(RoleInvestor))

	s.Add(RoleInvestor)
	s.Add(RoleInvestor)
	assert.Equal(t, []Role{RoleFounder, RoleInvestor, RoleMentor}, s.Slice())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Investor ")
	assert.True(t, ok)
	assert.Equal(t, RoleInvestor, r)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}

func TestComputeTargetMet(t *testing.T) {
	target := decimal.NewFromInt(1000)

	assert.True(t, ComputeTargetMet(target, decimal.NewFromInt(1000), 1))
	assert.False(t, ComputeTargetMet(target, decimal.NewFromInt(999), 1))
	assert.True(t, ComputeTargetMet(target, decimal.NewFromInt(110000), 2))
	assert.False(t, ComputeTargetMet(decimal.Zero, decimal.Zero, 0))
}

func TestStartupStatusValid(t *testing.T) {
	assert.True(t, StartupStatusAcquired.Valid())
	assert.False(t, StartupStatus("Paused").Valid())
}

func TestDefaultRoundLabel(t *testing.T) {
	assert.Equal(t, "Round 3", DefaultRoundLabel(3))
}

func TestFitsAmountAndEquity(t *testing.T) {
	d := decimal.RequireFromString

	assert.True(t, FitsAmount(d("1000.25")))
	assert.True(t, FitsAmount(d("9999999999999999.99")))
	assert.False(t, FitsAmount(d("0.004")))
	assert.False(t, FitsAmount(d("10000000000000000")))

	assert.True(t, FitsEquity(d("12.5")))
	assert.True(t, FitsEquity(d("0.0001")))
	assert.False(t, FitsEquity(d("0.00001")))
	assert.False(t, FitsEquity(d("100000")))
}
