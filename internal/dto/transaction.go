package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// TransactionDetailRequest is one denomination line of an exchange request.
type TransactionDetailRequest struct {
	Denomination int64  `json:"denomination" binding:"required,gt=0"`
	Quantity     int64  `json:"quantity" binding:"required,gt=0"`
	Kind         string `json:"kind" binding:"required,oneof=COIN BIG_MONEY"`
}

// RecordTransactionRequest defines the payload for recording an exchange.
type RecordTransactionRequest struct {
	// UserNik defaults to the authenticated caller when omitted.
	UserNik   string                     `json:"userNik"`
	StoreCode string                     `json:"storeCode"`
	Source    string                     `json:"source" binding:"required,oneof=field walk_in"`
	Details   []TransactionDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// ToDomainDetails converts request lines to domain detail lines.
func (r RecordTransactionRequest) ToDomainDetails() []domain.TransactionDetail {
	details := make([]domain.TransactionDetail, len(r.Details))
	for i, d := range r.Details {
		details[i] = domain.TransactionDetail{
			Denomination: d.Denomination,
			Quantity:     d.Quantity,
			Kind:         domain.DenominationClass(d.Kind),
		}
	}
	return details
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// TransactionDetailResponse is the transport shape of a detail line.
type TransactionDetailResponse struct {
	Denomination int64  `json:"denomination"`
	Quantity     int64  `json:"quantity"`
	Kind         string `json:"kind"`
}

// TransactionResponse is the transport shape of a recorded transaction.
type TransactionResponse struct {
	TransactionID   string                      `json:"transactionID"`
	UserNik         string                      `json:"userNik"`
	StoreCode       string                      `json:"storeCode,omitempty"`
	TransactionDate time.Time                   `json:"transactionDate"`
	Source          string                      `json:"source"`
	Details         []TransactionDetailResponse `json:"details"`
	CoinValue       decimal.Decimal             `json:"coinValue"`
	BigMoneyValue   decimal.Decimal             `json:"bigMoneyValue"`
}

// ToTransactionResponse converts a domain Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	details := make([]TransactionDetailResponse, len(t.Details))
	for i, d := range t.Details {
		details[i] = TransactionDetailResponse{
			Denomination: d.Denomination,
			Quantity:     d.Quantity,
			Kind:         string(d.Kind),
		}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		UserNik:         t.UserNik,
		StoreCode:       t.StoreCode,
		TransactionDate: t.TransactionDate,
		Source:          string(t.Source),
		Details:         details,
		CoinValue:       t.CoinValue,
		BigMoneyValue:   t.BigMoneyValue,
	}
}

// ToTransactionResponses converts a slice of domain Transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
