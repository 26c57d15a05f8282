package domain

import "fmt"

// PriceTable holds the tiered rental rates for an account, in cents.
// The 3/6/12/24 hour tiers are fixed prices for exactly that duration,
// NightCents covers the fixed night window, and HourlyCents prices every
// other duration per hour.
type PriceTable struct {
	Hours3Cents  int64 `json:"hours_3_cents"`
	Hours6Cents  int64 `json:"hours_6_cents"`
	Hours12Cents int64 `json:"hours_12_cents"`
	Hours24Cents int64 `json:"hours_24_cents"`
	NightCents   int64 `json:"night_cents"`
	HourlyCents  int64 `json:"hourly_cents"`
}

// NightRentHours is the duration booked when a renter picks the night tier.
const NightRentHours = 10

// AmountFor returns the rental price in cents for the given duration.
// night selects the night tier regardless of hours.
func (p PriceTable) AmountFor(hours int, night bool) (int64, error) {
	if night {
		if p.NightCents <= 0 {
			return 0, Validation("night rate is not offered for this account")
		}
		return p.NightCents, nil
	}
	if hours <= 0 {
		return 0, Validation("rent period must be positive")
	}
	switch hours {
	case 3:
		if p.Hours3Cents > 0 {
			return p.Hours3Cents, nil
		}
	case 6:
		if p.Hours6Cents > 0 {
			return p.Hours6Cents, nil
		}
	case 12:
		if p.Hours12Cents > 0 {
			return p.Hours12Cents, nil
		}
	case 24:
		if p.Hours24Cents > 0 {
			return p.Hours24Cents, nil
		}
	}
	if p.HourlyCents <= 0 {
		return 0, Validation(fmt.Sprintf("no rate configured for a %d hour rental", hours))
	}
	return int64(hours) * p.HourlyCents, nil
}

// Validate checks the table is usable: at least one tier must be priced and
// no rate may be negative.
func (p PriceTable) Validate() error {
	rates := []int64{p.Hours3Cents, p.Hours6Cents, p.Hours12Cents, p.Hours24Cents, p.NightCents, p.HourlyCents}
	any := false
	for _, r := range rates {
		if r < 0 {
			return Validation("price rates must not be negative")
		}
		if r > 0 {
			any = true
		}
	}
	if !any {
		return Validation("price table must define at least one rate")
	}
	return nil
}
