package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSource distinguishes in-route exchanges from office walk-ins.
type TransactionSource string

const (
	SourceField  TransactionSource = "FIELD"
	SourceWalkIn TransactionSource = "WALK_IN"
)

// DetailKind is the balance bucket of a transaction detail line.
type DetailKind string

const (
	KindCoin     DetailKind = "COIN"
	KindBigMoney DetailKind = "BIG_MONEY"
)

// Transaction is the storage shape of one recorded exchange.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	UserNik         string            `json:"userNik"`
	StoreCode       *string           `json:"storeCode,omitempty"`
	TransactionDate time.Time         `json:"transactionDate"`
	Source          TransactionSource `json:"source"`
	CoinValue       decimal.Decimal   `json:"coinValue"`
	BigMoneyValue   decimal.Decimal   `json:"bigMoneyValue"`
	AuditFields
}

// TransactionDetail is one denomination line belonging to a transaction.
type TransactionDetail struct {
	TransactionID string     `json:"transactionID"`
	Denomination  int64      `json:"denomination"`
	Quantity      int64      `json:"quantity"`
	Kind          DetailKind `json:"kind"`
}
