package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
)

const (
	homeFeaturedLimit    = 8
	homeNewArrivalsLimit = 8
	relatedLimit         = 4
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Search search.Index
	Events Publisher
}

type HomePage struct {
	Banner      *models.Banner   `json:"banner"`
	Featured    []models.Product `json:"featured"`
	NewArrivals []models.Product `json:"new_arrivals"`
}

type ProductPage struct {
	Product *models.Product  `json:"product"`
	Related []models.Product `json:"related"`
}

func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	banner, err := s.Repo.ActiveBanner(ctx)
	if err != nil {
		return nil, fmt.Errorf("active banner: %w", err)
	}
	featured, err := s.Repo.Featured(ctx, homeFeaturedLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}
	arrivals, err := s.Repo.NewArrivals(ctx, homeNewArrivalsLimit)
	if err != nil {
		return nil, fmt.Errorf("new arrivals: %w", err)
	}
	return &HomePage{Banner: banner, Featured: featured, NewArrivals: arrivals}, nil
}

func (s *CatalogService) Shop(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) ProductPage(ctx context.Context, id uint) (*ProductPage, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.Repo.Featured(ctx, relatedLimit, id)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	return &ProductPage{Product: product, Related: related}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ProductsNewestFirst(ctx)
}

// CreateProduct stores a product as a new arrival that is not featured.
func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	prod := productFromRequest(req)
	prod.IsFeatured = false
	prod.IsNewArrival = true

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	publish(ctx, s.Events, mykafka.TopicProductEvents, productKey(created.ID), map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
		"price":     created.Price,
	})
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateProduct(ctx, id, productFromRequest(req))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.index(ctx, updated)
	publish(ctx, s.Events, mykafka.TopicProductEvents, productKey(updated.ID), map[string]any{
		"type":      "product_updated",
		"productID": updated.ID,
		"name":      updated.Name,
		"price":     updated.Price,
	})
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "productID", id, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, productKey(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	if s.Search == nil {
		return 0, []models.Product{}, nil
	}
	return s.Search.Search(ctx, q, offset, limit)
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "productID", p.ID, "error", err)
	}
}

func validateProduct(req transport.ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.Brand) == "" {
		return fmt.Errorf("brand is required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return fmt.Errorf("image_url is required: %w", ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", ErrValidation)
	}
	return nil
}

func productFromRequest(req transport.ProductRequest) *models.Product {
	return &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Thumb1:      optional(req.Thumb1),
		Thumb2:      optional(req.Thumb2),
		Thumb3:      optional(req.Thumb3),
		Thumb4:      optional(req.Thumb4),
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func productKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
