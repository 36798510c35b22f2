package models

import "github.com/shopspring/decimal"

// UserBalance is the storage shape of a user's aggregate monetary balances.
type UserBalance struct {
	UserNik         string          `json:"userNik"`
	BalanceCoin     decimal.Decimal `json:"balanceCoin"`
	BalanceBigMoney decimal.Decimal `json:"balanceBigMoney"`
	AuditFields
}
