package promotion

import (
	"context"

	"github.com/shopspring/decimal"
)

// StaticCatalog serves a fixed code table held in memory.
type StaticCatalog struct {
	codes map[string]Promotion
}

func NewStaticCatalog(promos ...Promotion) *StaticCatalog {
	codes := make(map[string]Promotion, len(promos))
	for _, p := range promos {
		p.Code = NormalizeCode(p.Code)
		codes[p.Code] = p
	}
	return &StaticCatalog{codes: codes}
}

// DefaultCatalog holds the storefront's built-in codes.
func DefaultCatalog() *StaticCatalog {
	return NewStaticCatalog(
		Promotion{Code: "TOY20", Rate: decimal.RequireFromString("0.20")},
		Promotion{Code: "TOY10", Rate: decimal.RequireFromString("0.10")},
	)
}

func (s *StaticCatalog) Lookup(_ context.Context, code string) (Promotion, bool, error) {
	p, ok := s.codes[NormalizeCode(code)]
	return p, ok, nil
}

// Chain consults each catalog in order and returns the first hit.
type Chain []Catalog

func (c Chain) Lookup(ctx context.Context, code string) (Promotion, bool, error) {
	for _, cat := range c {
		p, ok, err := cat.Lookup(ctx, code)
		if err != nil {
			return Promotion{}, false, err
		}
		if ok {
			return p, true, nil
		}
	}
	return Promotion{}, false, nil
}
