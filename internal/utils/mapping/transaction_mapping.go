package mapping

import (
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to its model row.
// Detail lines are mapped separately with ToModelTransactionDetails.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var storeCode *string
	if d.StoreCode != "" {
		sc := d.StoreCode
		storeCode = &sc
	}
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserNik:         d.UserNik,
		StoreCode:       storeCode,
		TransactionDate: d.TransactionDate,
		Source:          models.TransactionSource(d.Source),
		CoinValue:       d.CoinValue,
		BigMoneyValue:   d.BigMoneyValue,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToModelTransactionDetails converts domain detail lines to model rows.
func ToModelTransactionDetails(transactionID string, details []domain.TransactionDetail) []models.TransactionDetail {
	out := make([]models.TransactionDetail, len(details))
	for i, d := range details {
		out[i] = models.TransactionDetail{
			TransactionID: transactionID,
			Denomination:  d.Denomination,
			Quantity:      d.Quantity,
			Kind:          models.DetailKind(d.Kind),
		}
	}
	return out
}

// ToDomainTransaction converts a model Transaction plus its detail rows to a
// domain Transaction.
func ToDomainTransaction(m models.Transaction, details []models.TransactionDetail) domain.Transaction {
	storeCode := ""
	if m.StoreCode != nil {
		storeCode = *m.StoreCode
	}
	domainDetails := make([]domain.TransactionDetail, len(details))
	for i, d := range details {
		domainDetails[i] = domain.TransactionDetail{
			Denomination: d.Denomination,
			Quantity:     d.Quantity,
			Kind:         domain.DenominationClass(d.Kind),
		}
	}
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserNik:         m.UserNik,
		StoreCode:       storeCode,
		TransactionDate: m.TransactionDate,
		Source:          domain.TransactionSource(m.Source),
		Details:         domainDetails,
		CoinValue:       m.CoinValue,
		BigMoneyValue:   m.BigMoneyValue,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
