package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/grocery-cart/config"
	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [-y]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && os.Args[2] == "-y"

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped rows: %d)\n", len(products), skipped)
	if len(products) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

// readProductsFromXLSX reads the first sheet. Columns are
// name, price, image, category; the first row is a header.
func readProductsFromXLSX(filePath string) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}

		product, ok := parseProductRow(row)
		if !ok || seen[strings.ToLower(product.Name)] {
			skipped++
			continue
		}
		seen[strings.ToLower(product.Name)] = true
		products = append(products, product)
	}

	return products, skipped, nil
}

func parseProductRow(row []string) (model.Product, bool) {
	if len(row) < 2 {
		return model.Product{}, false
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return model.Product{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	if err != nil || price.IsNegative() {
		return model.Product{}, false
	}

	product := model.Product{Name: name, Price: price}
	if len(row) > 2 {
		product.ImageURL = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		product.Category = strings.TrimSpace(row[3])
	}
	return product, true
}
