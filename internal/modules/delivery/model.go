// README: Delivery request result and session state definitions.
package delivery

import (
	"errors"
	"time"

	"motofrete/internal/maps"
	"motofrete/internal/modules/location"
	"motofrete/internal/modules/pricing"
	"motofrete/internal/types"
)

var (
	ErrEmptyAddress       = errors.New("address is required")
	ErrLocationUnresolved = errors.New("could not locate the delivery address")
	ErrNoResult           = errors.New("no delivery quote in this session")
	ErrBadSession         = errors.New("missing session id")
)

// State of a request session. A session holds zero or one Result.
type State string

const (
	StateEmpty     State = "empty"
	StateHasResult State = "has_result"
)

// Result is one calculated delivery quote. It is never mutated after
// creation; a new submission replaces it as a whole.
type Result struct {
	ID          types.ID        `json:"id"`
	Origin      types.Point     `json:"origin"`
	Destination types.Point     `json:"destination"`
	Route       maps.Route      `json:"route"`
	Fee         float64         `json:"fee"`
	Currency    string          `json:"currency"`
	Address     string          `json:"address"`
	Reference   string          `json:"reference"`
	Source      location.Source `json:"source"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r Result) DistanceKm() float64 {
	return r.Route.DistanceKm
}

// Price is the fee rounded to cents.
func (r Result) Price() types.Money {
	return pricing.Quote{Fee: r.Fee, Currency: r.Currency}.Money()
}

// ETAMinutes assumes the courier averages 30 km/h.
func (r Result) ETAMinutes() int {
	return int(r.Route.DistanceKm * 2)
}

// QuotedEvent is published after every successful calculation.
type QuotedEvent struct {
	QuoteID     types.ID    `json:"quote_id"`
	SessionID   types.ID    `json:"session_id"`
	Destination types.Point `json:"destination"`
	DistanceKm  float64     `json:"distance_km"`
	Fee         float64     `json:"fee"`
	Currency    string      `json:"currency"`
	IsFallback  bool        `json:"is_fallback"`
	Source      string      `json:"location_source"`
	OccurredAt  time.Time   `json:"occurred_at"`
}
