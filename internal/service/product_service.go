package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTaxRate is the Belgian standard VAT rate, applied when a product
// does not specify one.
const DefaultTaxRate = 21.0

type ProductService interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Get(ctx context.Context, userID, id string) (*model.Product, error)
	List(ctx context.Context, userID string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	Delete(ctx context.Context, userID, id string) error
}

type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "ProductService").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	p.ID = uuid.NewString()
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.TaxRate == 0 {
		p.TaxRate = DefaultTaxRate
	}
	p.Active = true
	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("user_id", p.UserID).Msg("Failed to create product")
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, userID, id string) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, userID, id)
}

func (s *productService) List(ctx context.Context, userID string) ([]model.Product, error) {
	return s.productRepo.ListByUser(ctx, userID)
}

func (s *productService) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, userID, id string) error {
	return s.productRepo.Delete(ctx, userID, id)
}
