package db

import (
	"testing"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_SeedsCatalogOnce(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, Migrate(testDB))
	require.NoError(t, Migrate(testDB))

	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Equal(t, int64(len(DefaultCatalog())), count)

	var apple model.Product
	require.NoError(t, testDB.Where("name = ?", "Apple").First(&apple).Error)
	assert.Equal(t, "89", apple.Price.String())
	assert.Equal(t, "Fruit", apple.Category)
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, SeedCatalog(testDB))
	require.NoError(t, TruncateAllTables(testDB))

	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Zero(t, count)
}
