package domain

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

// TransactionDetail is one denomination line of an exchange.
type TransactionDetail struct {
	Denomination int64             `json:"denomination"`
	Quantity     int64             `json:"quantity"`
	Kind         DenominationClass `json:"kind"`
}

// Transaction records one coin exchange: coins handed out against paper money
// received. Field transactions consume the cashier's assignment float;
// walk-ins draw directly from the warehouse.
type Transaction struct {
	TransactionID   string              `json:"transactionID"`
	UserNik         string              `json:"userNik"`
	StoreCode       string              `json:"storeCode,omitempty"`
	TransactionDate time.Time           `json:"transactionDate"`
	Source          TransactionSource   `json:"source"`
	Details         []TransactionDetail `json:"details"`
	// Aggregate Rupiah values derived from the detail lines.
	CoinValue     decimal.Decimal `json:"coinValue"`
	BigMoneyValue decimal.Decimal `json:"bigMoneyValue"`
	AuditFields
}

// CoinDetails returns the COIN lines with positive quantity.
func (t *Transaction) CoinDetails() []TransactionDetail {
	out := make([]TransactionDetail, 0, len(t.Details))
	for _, d := range t.Details {
		if d.Kind == ClassCoin && d.Quantity > 0 {
			out = append(out, d)
		}
	}
	return out
}

// BigMoneyDetails returns the BIG_MONEY lines with positive quantity.
func (t *Transaction) BigMoneyDetails() []TransactionDetail {
	out := make([]TransactionDetail, 0, len(t.Details))
	for _, d := range t.Details {
		if d.Kind == ClassBigMoney && d.Quantity > 0 {
			out = append(out, d)
		}
	}
	return out
}

// MergeDetails collapses duplicate lines of the same denomination and kind
// into one, summing quantities. Detail lines are keyed by (denomination, kind)
// downstream, so duplicates must be merged before a transaction is built.
// First-seen order is preserved.
func MergeDetails(details []TransactionDetail) []TransactionDetail {
	type key struct {
		denomination int64
		kind         DenominationClass
	}
	index := make(map[key]int, len(details))
	merged := make([]TransactionDetail, 0, len(details))
	for _, d := range details {
		k := key{denomination: d.Denomination, kind: d.Kind}
		if i, ok := index[k]; ok {
			merged[i].Quantity += d.Quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, d)
	}
	return merged
}

// DetailValues computes the aggregate coin and big-money values over the
// detail lines.
func DetailValues(details []TransactionDetail) (coin decimal.Decimal, bigMoney decimal.Decimal) {
	coin = decimal.Zero
	bigMoney = decimal.Zero
	for _, d := range details {
		if d.Quantity <= 0 {
			continue
		}
		value := decimal.NewFromInt(d.Denomination * d.Quantity)
		if d.Kind == ClassCoin {
			coin = coin.Add(value)
		} else {
			bigMoney = bigMoney.Add(value)
		}
	}
	return coin, bigMoney
}
