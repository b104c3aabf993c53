package db

import (
	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []interface{} {
	return []interface{}{
		&model.Product{},
		&model.CartSnapshot{},
	}
}

// Migrate runs database migrations and seeds the default catalog
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedCatalog(db); err != nil {
		logger.Error("Failed to seed catalog during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// DefaultCatalog is the storefront's static product list.
func DefaultCatalog() []model.Product {
	return []model.Product{
		{Name: "Apple", Price: decimal.NewFromInt(89), ImageURL: "/apple.jpg", Category: "Fruit"},
		{Name: "Chocolate", Price: decimal.NewFromInt(1740), ImageURL: "/chocolate.jpg", Category: "Chocolate"},
		{Name: "Watermelon", Price: decimal.NewFromInt(4857), ImageURL: "/watermelon.jpg", Category: "Fruit"},
		{Name: "Grapes", Price: decimal.NewFromInt(3580), ImageURL: "/grapes.jpg", Category: "Fruit"},
		{Name: "Pineapple", Price: decimal.NewFromInt(12000), ImageURL: "/pine.jpg", Category: "Things"},
		{Name: "Dairy", Price: decimal.NewFromInt(12000), ImageURL: "/milk.jpg", Category: "Milk"},
	}
}

// SeedCatalog inserts DefaultCatalog when the products table is empty
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	products := DefaultCatalog()
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	logger.Info("Catalog seeded", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
