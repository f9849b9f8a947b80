// README: Delivery rate definition for the two-tier distance tariff.
package pricing

import "errors"

var ErrInvalidRate = errors.New("invalid delivery rate")

// Rate is the store's delivery tariff: a flat minimum fee that covers the
// included distance, then a per-km charge for every km beyond it.
type Rate struct {
	MinimumFee float64
	IncludedKm float64
	PerKmRate  float64
	Currency   string
}

// DefaultRate is the tariff printed on the store's counter.
func DefaultRate() Rate {
	return Rate{
		MinimumFee: 5.00,
		IncludedKm: 5.0,
		PerKmRate:  0.75,
		Currency:   "BRL",
	}
}

func (r Rate) Validate() error {
	switch {
	case r.MinimumFee <= 0:
		return errors.Join(ErrInvalidRate, errors.New("minimum fee must be positive"))
	case r.IncludedKm < 0:
		return errors.Join(ErrInvalidRate, errors.New("included km cannot be negative"))
	case r.PerKmRate < 0:
		return errors.Join(ErrInvalidRate, errors.New("per-km rate cannot be negative"))
	case r.Currency == "":
		return errors.Join(ErrInvalidRate, errors.New("currency is required"))
	}
	return nil
}
