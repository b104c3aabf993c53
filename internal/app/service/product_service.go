package service

import (
	"errors"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidSort     = errors.New("invalid sort order")
)

type ProductListOptions struct {
	Search   string
	Category string
	Sort     string
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	ListCategories() ([]string, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"search":   opts.Search,
		"category": opts.Category,
		"sort":     opts.Sort,
	})

	sort := repository.ProductSortPriceAsc
	switch repository.ProductSort(opts.Sort) {
	case "", repository.ProductSortPriceAsc:
	case repository.ProductSortPriceDesc:
		sort = repository.ProductSortPriceDesc
	default:
		return nil, ErrInvalidSort
	}

	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		Search:   opts.Search,
		Category: opts.Category,
		Sort:     sort,
	})
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) ListCategories() ([]string, error) {
	return s.productRepo.ListCategories()
}
