package service

import (
	"testing"

	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedCatalog(testDB))

	return NewProductService(repository.NewProductRepository(testDB))
}

func TestProductService_ListProducts(t *testing.T) {
	svc := setupProductServiceTest(t)

	products, err := svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, "Apple", products[0].Name)

	products, err = svc.ListProducts(ProductListOptions{Sort: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "12000", products[0].Price.String())

	products, err = svc.ListProducts(ProductListOptions{Category: "Fruit", Search: "ap"})
	require.NoError(t, err)
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Apple", "Grapes"}, names)
}

func TestProductService_ListProducts_InvalidSort(t *testing.T) {
	svc := setupProductServiceTest(t)

	_, err := svc.ListProducts(ProductListOptions{Sort: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestProductService_GetProductByID(t *testing.T) {
	svc := setupProductServiceTest(t)

	products, err := svc.ListProducts(ProductListOptions{Search: "Dairy"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	product, err := svc.GetProductByID(products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", product.Category)

	_, err = svc.GetProductByID(4242)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListCategories(t *testing.T) {
	svc := setupProductServiceTest(t)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Chocolate", "Fruit", "Milk", "Things"}, categories)
}
