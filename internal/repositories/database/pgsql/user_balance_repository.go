package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portsrepo "github.com/tukarkoin/tukar_koin_app/internal/core/ports/repositories"
	"github.com/tukarkoin/tukar_koin_app/internal/models"
	"github.com/tukarkoin/tukar_koin_app/internal/utils/mapping"
)

type PgxUserBalanceRepository struct {
	BaseRepository
}

// newPgxUserBalanceRepository creates a new repository for per-user coin and
// big money balances.
func newPgxUserBalanceRepository(pool *pgxpool.Pool) portsrepo.UserBalanceRepositoryFacade {
	return &PgxUserBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserBalanceRepository implements the facade.
var _ portsrepo.UserBalanceRepositoryFacade = (*PgxUserBalanceRepository)(nil)

// FindBalanceByUserNik retrieves the balance row for a user.
func (r *PgxUserBalanceRepository) FindBalanceByUserNik(ctx context.Context, userNik string) (*domain.UserBalance, error) {
	query := `
		SELECT user_nik, balance_coin, balance_big_money,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM user_balances
		WHERE user_nik = $1;
	`
	var m models.UserBalance
	err := r.Pool.QueryRow(ctx, query, userNik).Scan(
		&m.UserNik,
		&m.BalanceCoin,
		&m.BalanceBigMoney,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for user "+userNik, err)
	}

	balance := mapping.ToDomainUserBalance(m)
	return &balance, nil
}

// ApplyBalanceDeltaInTx adds the signed coin and big money deltas onto the
// user's balance row inside the caller's transaction, creating the row when
// the user has no balance yet.
func (r *PgxUserBalanceRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, delta domain.BalanceDelta, updatedBy string, updatedAt time.Time) error {
	if delta.IsZero() {
		return nil
	}

	query := `
		INSERT INTO user_balances (user_nik, balance_coin, balance_big_money, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (user_nik) DO UPDATE SET
			balance_coin = user_balances.balance_coin + EXCLUDED.balance_coin,
			balance_big_money = user_balances.balance_big_money + EXCLUDED.balance_big_money,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query,
		delta.UserNik,
		delta.CoinDelta,
		delta.BigMoneyDelta,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply balance delta for user "+delta.UserNik, err)
	}
	return nil
}
