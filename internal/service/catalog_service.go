package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"restaurant-pos/internal/entity"
	"restaurant-pos/internal/repository"
)

// CatalogService serves menu products. Reads go through a Redis cache;
// catalog writes invalidate the cached entry so order paths always see
// the current price and availability.
type CatalogService struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
}

// NewCatalogService creates a new instance of CatalogService. rdb may be
// nil, which disables caching.
func NewCatalogService(productRepo repository.ProductRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		rdb:         rdb,
	}
}

func productCacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct retrieves a product, preferring the cache.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, productCacheKey(id)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
		}
		if cached != "" {
			var product entity.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
			logger.Warn().Msgf("Dropping unreadable cache entry for product %d", id)
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheProduct(ctx, product)
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	return created, nil
}

// UpdateProduct edits the product and evicts its cache entry. Existing
// order items keep their snapshots; nothing cascades.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", product.ID)
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, productCacheKey(product.ID)).Err(); err != nil {
			logger.Warn().Err(err).Msgf("Failed to invalidate cache for product %d", product.ID)
		}
	}
	return updated, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, restaurantID int) ([]entity.Product, error) {
	return s.productRepo.ListByRestaurant(ctx, restaurantID)
}

// MarkUnavailableToday flags a product as off the menu for the given
// ISO date, defaulting to today (UTC).
func (s *CatalogService) MarkUnavailableToday(ctx context.Context, restaurantID, productID int, dateISO string) error {
	if dateISO == "" {
		dateISO = time.Now().UTC().Format("2006-01-02")
	}

	// the product must exist; availability is not required
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return err
	}

	return s.productRepo.MarkUnavailable(ctx, restaurantID, productID, dateISO)
}

func (s *CatalogService) ListUnavailableByDate(ctx context.Context, restaurantID int, dateISO string) ([]entity.UnavailableDaily, error) {
	if dateISO == "" {
		dateISO = time.Now().UTC().Format("2006-01-02")
	}
	return s.productRepo.ListUnavailableByDate(ctx, restaurantID, dateISO)
}

func (s *CatalogService) cacheProduct(ctx context.Context, product *entity.Product) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, productCacheKey(product.ID), data, 0).Err(); err != nil {
		logger.Warn().Err(err).Msgf("Failed to cache product %d", product.ID)
	}
}
