package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DenominationClass splits denominations into the two aggregate balance buckets.
type DenominationClass string

const (
	ClassCoin     DenominationClass = "COIN"
	ClassBigMoney DenominationClass = "BIG_MONEY"
)

// coinClassMax is the largest denomination still counted toward the coin
// balance. Everything above it counts toward the big-money balance.
const coinClassMax int64 = 1000

// DenominationCatalog lists the denominations the operator handles.
// The system accepts any positive denomination; the catalog is used for
// zero-filled warehouse reads and display ordering only.
var DenominationCatalog = []int64{100, 200, 500, 1000, 2000, 5000, 10000, 20000, 50000, 100000}

// ClassifyDenomination maps a denomination to its balance bucket.
// Both assignment creation and completion must use this single function so
// the two paths cannot drift.
func ClassifyDenomination(denomination int64) DenominationClass {
	if denomination <= coinClassMax {
		return ClassCoin
	}
	return ClassBigMoney
}

// DenominationLedger maps a denomination to a piece count. It is the atomic
// unit of value representation shared by the warehouse, assignments and
// transaction details.
type DenominationLedger map[int64]int64

// Clone returns an independent copy of the ledger.
func (l DenominationLedger) Clone() DenominationLedger {
	out := make(DenominationLedger, len(l))
	for d, q := range l {
		out[d] = q
	}
	return out
}

// Quantity returns the count for a denomination, zero when absent.
func (l DenominationLedger) Quantity(denomination int64) int64 {
	return l[denomination]
}

// Value returns the total monetary value of the ledger in Rupiah.
func (l DenominationLedger) Value() decimal.Decimal {
	var total int64
	for d, q := range l {
		total += d * q
	}
	return decimal.NewFromInt(total)
}

// SplitValue returns the ledger's monetary value split into the coin and
// big-money buckets, counting only positive quantities.
func (l DenominationLedger) SplitValue() (coin decimal.Decimal, bigMoney decimal.Decimal) {
	coin = decimal.Zero
	bigMoney = decimal.Zero
	for d, q := range l {
		if q <= 0 {
			continue
		}
		value := decimal.NewFromInt(d * q)
		if ClassifyDenomination(d) == ClassCoin {
			coin = coin.Add(value)
		} else {
			bigMoney = bigMoney.Add(value)
		}
	}
	return coin, bigMoney
}

// Denominations returns the ledger's keys in ascending order.
func (l DenominationLedger) Denominations() []int64 {
	out := make([]int64, 0, len(l))
	for d := range l {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Negate returns a copy of the ledger with every quantity sign-flipped.
// Used to express warehouse deductions as deltas.
func (l DenominationLedger) Negate() DenominationLedger {
	out := make(DenominationLedger, len(l))
	for d, q := range l {
		out[d] = -q
	}
	return out
}

// Positive returns a copy containing only entries with quantity > 0.
func (l DenominationLedger) Positive() DenominationLedger {
	out := make(DenominationLedger)
	for d, q := range l {
		if q > 0 {
			out[d] = q
		}
	}
	return out
}

// ZeroFilledCatalog returns the ledger with every catalog denomination
// present, defaulting to zero.
func (l DenominationLedger) ZeroFilledCatalog() DenominationLedger {
	out := l.Clone()
	for _, d := range DenominationCatalog {
		if _, ok := out[d]; !ok {
			out[d] = 0
		}
	}
	return out
}
