package domain

import "github.com/shopspring/decimal"

// UserBalance tracks a field worker's aggregate monetary balances, split into
// coin value and big-money value. These are Rupiah values, not piece counts.
type UserBalance struct {
	UserNik         string          `json:"userNik"`
	BalanceCoin     decimal.Decimal `json:"balanceCoin"`
	BalanceBigMoney decimal.Decimal `json:"balanceBigMoney"`
	AuditFields
}

// BalanceDelta is a signed adjustment applied to a user's aggregate balances.
type BalanceDelta struct {
	UserNik       string
	CoinDelta     decimal.Decimal
	BigMoneyDelta decimal.Decimal
}

// IsZero reports whether the delta changes nothing.
func (d BalanceDelta) IsZero() bool {
	return d.CoinDelta.IsZero() && d.BigMoneyDelta.IsZero()
}
