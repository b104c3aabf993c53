package repository

import (
	"strings"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPriceAsc  ProductSort = "asc"
	ProductSortPriceDesc ProductSort = "desc"
)

// CategoryAll matches every category.
const CategoryAll = "All"

type ProductFilter struct {
	Search   string
	Category string
	Sort     ProductSort
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	Count() (int64, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	ListCategories() ([]string, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}

	logger.Info("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(&products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count products", err)
		return 0, err
	}
	return count, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"search":   filter.Search,
		"category": filter.Category,
		"sort":     filter.Sort,
	})

	query := r.db.Model(&model.Product{})

	if filter.Category != "" && filter.Category != CategoryAll {
		query = query.Where("category = ?", filter.Category)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	direction := "ASC"
	if filter.Sort == ProductSortPriceDesc {
		direction = "DESC"
	}
	query = query.Order("price " + direction).Order("id ASC")

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search":   filter.Search,
			"category": filter.Category,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Product{}).
		Distinct().
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		logger.Error("Failed to list product categories", err)
		return nil, err
	}
	return categories, nil
}
