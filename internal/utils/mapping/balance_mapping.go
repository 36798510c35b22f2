package mapping

import (
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
)

// ToDomainUserBalance converts a model UserBalance to a domain UserBalance.
func ToDomainUserBalance(m models.UserBalance) domain.UserBalance {
	return domain.UserBalance{
		UserNik:         m.UserNik,
		BalanceCoin:     m.BalanceCoin,
		BalanceBigMoney: m.BalanceBigMoney,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
