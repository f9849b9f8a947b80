// README: Rate override store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rateSchema = `
CREATE TABLE IF NOT EXISTS delivery_rates (
    id          SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    minimum_fee NUMERIC(10,2) NOT NULL,
    included_km NUMERIC(10,3) NOT NULL,
    per_km_rate NUMERIC(10,2) NOT NULL,
    currency    CHAR(3)       NOT NULL DEFAULT 'BRL',
    updated_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
)`

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, rateSchema); err != nil {
		return fmt.Errorf("create delivery_rates: %w", err)
	}
	return nil
}

// GetRate reads the single override row, if any.
func (s *Store) GetRate(ctx context.Context) (Rate, bool, error) {
	var r Rate
	err := s.db.QueryRow(ctx, `
        SELECT minimum_fee::float8, included_km::float8, per_km_rate::float8, currency
        FROM delivery_rates
        WHERE id = 1`,
	).Scan(&r.MinimumFee, &r.IncludedKm, &r.PerKmRate, &r.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, false, nil
	}
	if err != nil {
		return Rate{}, false, fmt.Errorf("query delivery rate: %w", err)
	}
	return r, true, nil
}
