// README: Quote history backed by PostgreSQL.
package delivery

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"motofrete/internal/types"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS delivery_quotes (
    id              TEXT PRIMARY KEY,
    session_id      TEXT             NOT NULL,
    address         TEXT             NOT NULL,
    reference       TEXT             NOT NULL DEFAULT '',
    dest_lat        DOUBLE PRECISION NOT NULL,
    dest_lng        DOUBLE PRECISION NOT NULL,
    distance_km     DOUBLE PRECISION NOT NULL,
    fee             NUMERIC(10,2)    NOT NULL,
    currency        CHAR(3)          NOT NULL,
    is_fallback     BOOLEAN          NOT NULL,
    location_source TEXT             NOT NULL,
    created_at      TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS delivery_quotes_created_at_idx ON delivery_quotes (created_at DESC)`

type HistoryStore struct {
	db *pgxpool.Pool
}

func NewHistoryStore(db *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, historySchema); err != nil {
		return fmt.Errorf("create delivery_quotes: %w", err)
	}
	return nil
}

func (s *HistoryStore) Append(ctx context.Context, sessionID types.ID, r Result) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO delivery_quotes (
            id, session_id, address, reference,
            dest_lat, dest_lng, distance_km,
            fee, currency, is_fallback, location_source, created_at
        ) VALUES (
            $1, $2, $3, $4,
            $5, $6, $7,
            $8, $9, $10, $11, $12
        )`,
		string(r.ID), string(sessionID), r.Address, r.Reference,
		r.Destination.Lat, r.Destination.Lng, r.Route.DistanceKm,
		r.Price().Float(), r.Currency, r.Route.IsFallback, string(r.Source), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery quote: %w", err)
	}
	return nil
}
