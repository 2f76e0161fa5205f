package rental

import (
	"fmt"
	"strings"
	"time"

	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	FieldDurationDays = "durationDays"
	FieldStartDate    = "startDate"
)

// RentalSelection is a chosen option pinned to a start date. It lives only
// long enough to build an add-to-cart request.
type RentalSelection struct {
	ProductID    string
	DurationDays int
	OptionIndex  int
	StartDate    Date
	EndDate      Date
	UnitPrice    decimal.Decimal
}

// EndDateFor applies inclusive day counting: a 1-day rental ends on its start date.
func EndDateFor(start Date, durationDays int) Date {
	return start.AddDays(durationDays - 1)
}

// CoveredDays is the inclusive span end-start+1.
func (s RentalSelection) CoveredDays() int {
	return s.StartDate.DaysUntil(s.EndDate) + 1
}

type SelectionBuilder struct {
	clock    clock.Clock
	location *time.Location
}

func NewSelectionBuilder(c clock.Clock, loc *time.Location) *SelectionBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &SelectionBuilder{clock: c, location: loc}
}

func (b *SelectionBuilder) Today() Date {
	return DateOf(clock.Today(b.clock, b.location))
}

func (b *SelectionBuilder) Build(productID string, options Options, durationDays int, startDate string) (RentalSelection, error) {
	opt, idx, ok := options.Find(durationDays)
	if !ok {
		return RentalSelection{}, errs.NewValidation(FieldDurationDays,
			fmt.Sprintf("no rental plan of %d days for this product", durationDays))
	}

	if strings.TrimSpace(startDate) == "" {
		return RentalSelection{}, errs.NewValidation(FieldStartDate, "start date is required")
	}
	start, err := ParseDate(startDate)
	if err != nil {
		return RentalSelection{}, errs.NewValidation(FieldStartDate, "start date must be a valid YYYY-MM-DD date")
	}
	if start.Before(b.Today()) {
		return RentalSelection{}, errs.NewValidation(FieldStartDate, "start date cannot be in the past")
	}

	return RentalSelection{
		ProductID:    productID,
		DurationDays: opt.DurationDays,
		OptionIndex:  idx,
		StartDate:    start,
		EndDate:      EndDateFor(start, opt.DurationDays),
		UnitPrice:    opt.Price,
	}, nil
}
