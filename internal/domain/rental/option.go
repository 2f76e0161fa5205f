package rental

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDuration   = errors.New("rental duration must be positive")
	ErrNegativePrice     = errors.New("rental price cannot be negative")
	ErrDuplicateDuration = errors.New("rental durations must be unique within a product")
)

// RentalOption is catalog data: renting for DurationDays costs Price.
type RentalOption struct {
	DurationDays int
	Price        decimal.Decimal
}

func NewRentalOption(durationDays int, price decimal.Decimal) (RentalOption, error) {
	if durationDays <= 0 {
		return RentalOption{}, ErrInvalidDuration
	}
	if price.IsNegative() {
		return RentalOption{}, ErrNegativePrice
	}
	return RentalOption{DurationDays: durationDays, Price: price}, nil
}

// Options keeps the catalog order, because the cart service addresses an
// option by its index in this list.
type Options []RentalOption

func NewOptions(opts ...RentalOption) (Options, error) {
	seen := make(map[int]struct{}, len(opts))
	for _, o := range opts {
		if o.DurationDays <= 0 {
			return nil, ErrInvalidDuration
		}
		if o.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		if _, dup := seen[o.DurationDays]; dup {
			return nil, ErrDuplicateDuration
		}
		seen[o.DurationDays] = struct{}{}
	}
	out := make(Options, len(opts))
	copy(out, opts)
	return out, nil
}

func (o Options) Find(durationDays int) (RentalOption, int, bool) {
	for i, opt := range o {
		if opt.DurationDays == durationDays {
			return opt, i, true
		}
	}
	return RentalOption{}, -1, false
}

func (o Options) Durations() []int {
	ds := make([]int, len(o))
	for i, opt := range o {
		ds[i] = opt.DurationDays
	}
	return ds
}

// SortedByDuration returns a copy ordered shortest first, for display.
func (o Options) SortedByDuration() Options {
	out := make(Options, len(o))
	copy(out, o)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DurationDays < out[j].DurationDays })
	return out
}
