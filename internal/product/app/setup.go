// Package app contains the application setup for the inventory example program.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/abgdnv/inventory/internal/config"
	perrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/abgdnv/inventory/internal/product/store"
	"github.com/spf13/afero"
)

// SampleProduct is added when no seed file is configured.
var SampleProduct = store.NewProduct{
	Title:       "Producto 2",
	Description: "Descripción del producto 2",
	Price:       15.99,
	Thumbnail:   "ruta/imagen2.jpg",
	Code:        "DEF456",
	Stock:       20,
}

// SamplePatch is applied to the first product by RunExample.
var SamplePatch = store.ProductPatch{
	Title:       ptr("Producto actualizado"),
	Description: ptr("Nueva descripción"),
	Price:       ptr(19.99),
	Thumbnail:   ptr("ruta/imagen1.jpg"),
	Code:        ptr("ABc145"),
	Stock:       ptr(30),
}

// SetupStore opens the product store at the configured path.
// A missing or unreadable file is logged and the store starts empty.
func SetupStore(cfg *config.Config, fsys afero.Fs, logger *slog.Logger) store.ProductStore {
	st, err := store.NewFileStore(cfg.Storage.Path, store.WithFs(fsys), store.WithLogger(logger))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("No products file yet, starting empty", "path", cfg.Storage.Path)
		} else {
			logger.Warn("Products file could not be loaded, starting empty", "error", err)
		}
	}
	return st
}

// Seed adds every product decoded from r and returns how many were added.
// Invalid or duplicate entries are logged and skipped; a storage write failure stops seeding.
func Seed(st store.ProductStore, r io.Reader, logger *slog.Logger) (int, error) {
	list, err := store.DecodeNewProducts(r)
	if err != nil {
		return 0, fmt.Errorf("failed to decode seed products: %w", err)
	}
	added := 0
	for i, p := range list {
		if _, err := st.AddProduct(p); err != nil {
			if errors.Is(err, perrors.ErrValidation) {
				logger.Warn("Skipping invalid seed product", "index", i, "code", p.Code, "error", err)
				continue
			}
			return added, fmt.Errorf("failed to add seed product %d: %w", i, err)
		}
		added++
	}
	return added, nil
}

// RunExample lists the products, looks up the first one and applies SamplePatch to it.
func RunExample(st store.ProductStore, logger *slog.Logger) error {
	products := st.GetProducts()
	logger.Info("Products", "count", len(products), "products", products)

	const productID = 1
	product, err := st.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			logger.Warn("Product not found", "ID", productID)
			return nil
		}
		return fmt.Errorf("failed to fetch product by ID %d: %w", productID, err)
	}
	logger.Info("Product found", "product", *product)

	updated, err := st.UpdateProduct(productID, SamplePatch)
	if err != nil {
		return fmt.Errorf("failed to update product with ID %d: %w", productID, err)
	}
	logger.Info("Product after update", "product", *updated)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
