package backend

import (
	"context"
	"net/http"

	"toy-rental-storefront/internal/domain/product"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"
)

type CatalogService struct {
	client *Client
}

func NewCatalogService(client *Client) *CatalogService {
	return &CatalogService{client: client}
}

var _ usecase.CatalogService = (*CatalogService)(nil)

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var payload productPayload
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"products", id},
		entity: "product",
		id:     id,
	}, &payload)
	if err != nil {
		return nil, err
	}

	p, err := payload.toDomain(id)
	if err != nil {
		return nil, errs.Wrap(err, "decode product")
	}
	return p, nil
}
