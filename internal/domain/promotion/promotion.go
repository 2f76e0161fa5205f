package promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidRate = errors.New("promotion rate must be in [0, 1)")

const (
	MessageInvalid = "Invalid promo code"
	MessageEmpty   = "Please enter a promo code"
)

// Promotion maps a code to a fractional discount rate.
type Promotion struct {
	Code string
	Rate decimal.Decimal
}

func NewPromotion(code string, rate decimal.Decimal) (Promotion, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Promotion{}, ErrInvalidRate
	}
	return Promotion{Code: NormalizeCode(code), Rate: rate}, nil
}

// DiscountOn returns subtotal × rate, unrounded.
func (p Promotion) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.Rate)
}

// PercentOff is the rate as a whole-number-ish percentage for messages.
func (p Promotion) PercentOff() decimal.Decimal {
	return p.Rate.Mul(decimal.NewFromInt(100))
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Catalog resolves a normalised code. A miss is (zero, false, nil); an error is
// reserved for lookup failures.
type Catalog interface {
	Lookup(ctx context.Context, code string) (Promotion, bool, error)
}

// Result is what the checkout form shows after a code is submitted. Message is
// transient feedback and is not part of any persisted state.
type Result struct {
	Code           string
	Rate           decimal.Decimal
	DiscountAmount decimal.Decimal
	Message        string
	Valid          bool
}

// Promotion returns the promotion to apply, or nil for a negative result.
func (r Result) Promotion() *Promotion {
	if !r.Valid {
		return nil
	}
	return &Promotion{Code: r.Code, Rate: r.Rate}
}

type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Apply is idempotent: the same code and subtotal always give the same Result.
// An unknown code is a valid negative result, not an error.
func (e *Engine) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return Result{Rate: decimal.Zero, DiscountAmount: decimal.Zero, Message: MessageEmpty}, nil
	}

	promo, ok, err := e.catalog.Lookup(ctx, normalized)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{
			Code:           normalized,
			Rate:           decimal.Zero,
			DiscountAmount: decimal.Zero,
			Message:        MessageInvalid,
		}, nil
	}

	return Result{
		Code:           promo.Code,
		Rate:           promo.Rate,
		DiscountAmount: promo.DiscountOn(subtotal),
		Message:        fmt.Sprintf("Promo code applied! You saved %s%%", promo.PercentOff().String()),
		Valid:          true,
	}, nil
}
