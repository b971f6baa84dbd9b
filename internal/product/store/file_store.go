package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	perrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

const (
	snapshotIndent = "    "
	snapshotPerm   = 0o644
)

// fileStore implements ProductStore on top of a single JSON file.
// The whole collection is kept in memory and rewritten after every mutation.
// It is not safe for concurrent use.
type fileStore struct {
	fs       afero.Fs
	path     string
	products []Product
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configures a file store.
type Option func(*fileStore)

// WithFs sets the filesystem the snapshot file lives on. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *fileStore) {
		s.fs = fs
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *fileStore) {
		s.logger = logger
	}
}

// NewFileStore creates a ProductStore backed by the file at path and loads its contents.
// The returned store is always usable: if the file can't be read or parsed the store
// starts empty and the error, wrapping ErrStorageRead, is returned alongside it.
func NewFileStore(path string, opts ...Option) (ProductStore, error) {
	s := &fileStore{
		fs:       afero.NewOsFs(),
		path:     path,
		products: []Product{},
		validate: newValidator(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store", "path", path)

	if err := s.load(); err != nil {
		s.logger.Warn("Error loading products, starting with an empty collection", "error", err)
		return s, err
	}
	s.logger.Debug("Products loaded", "count", len(s.products))
	return s, nil
}

// AddProduct validates p, assigns it the next ID and saves the collection.
func (s *fileStore) AddProduct(p NewProduct) (*Product, error) {
	if err := checkNewProduct(s.validate, p); err != nil {
		return nil, err
	}
	if s.indexOfCode(p.Code) != -1 {
		return nil, &perrors.ValidationError{Field: "code", Rule: perrors.RuleUnique}
	}

	product := Product{
		ID:          s.nextID(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Thumbnail:   p.Thumbnail,
		Code:        p.Code,
		Stock:       int(p.Stock),
	}
	s.products = append(s.products, product)
	if err := s.save(); err != nil {
		return nil, err
	}

	s.logger.Info("Product created successfully", "ID", product.ID, "code", product.Code)
	return &product, nil
}

// GetProducts returns a copy of all products.
func (s *fileStore) GetProducts() []Product {
	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list
}

// GetProductByID retrieves a product by its ID.
func (s *fileStore) GetProductByID(id int) (*Product, error) {
	i := s.indexOf(id)
	if i == -1 {
		return nil, perrors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// UpdateProduct merges patch onto the product with the given ID and saves the collection.
// Patched fields are not validated.
func (s *fileStore) UpdateProduct(id int, patch ProductPatch) (*Product, error) {
	i := s.indexOf(id)
	if i == -1 {
		return nil, perrors.ErrProductNotFound
	}
	patch.apply(&s.products[i])
	p := s.products[i]
	if err := s.save(); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated successfully", "ID", p.ID, "code", p.Code)
	return &p, nil
}

// DeleteProduct deletes a product by its ID and saves the collection.
func (s *fileStore) DeleteProduct(id int) error {
	i := s.indexOf(id)
	if i == -1 {
		return perrors.ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	if err := s.save(); err != nil {
		return err
	}

	s.logger.Info("Product deleted successfully", "ID", id)
	return nil
}

func (s *fileStore) indexOf(id int) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *fileStore) indexOfCode(code string) int {
	for i, p := range s.products {
		if p.Code == code {
			return i
		}
	}
	return -1
}

// nextID returns one more than the highest ID in the collection, or 1 if it is empty.
// For append-only collections this is the last product's ID plus one.
func (s *fileStore) nextID() int {
	maxID := 0
	for _, p := range s.products {
		maxID = max(maxID, p.ID)
	}
	return maxID + 1
}

// load replaces the in-memory collection with the contents of the file.
// On failure the collection is left empty.
func (s *fileStore) load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("%w from %s: %w", perrors.ErrStorageRead, s.path, err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("%w from %s: %w", perrors.ErrStorageRead, s.path, err)
	}
	if products != nil {
		s.products = products
	}
	return nil
}

// save rewrites the file with the whole collection.
// A failed write may leave the file stale while memory already holds the change.
func (s *fileStore) save() error {
	data, err := json.MarshalIndent(s.products, "", snapshotIndent)
	if err != nil {
		s.logger.Error("Error encoding products", "error", err)
		return fmt.Errorf("%w to %s: %w", perrors.ErrStorageWrite, s.path, err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, snapshotPerm); err != nil {
		s.logger.Error("Error saving products", "error", err)
		return fmt.Errorf("%w to %s: %w", perrors.ErrStorageWrite, s.path, err)
	}
	s.logger.Debug("Products saved", "count", len(s.products))
	return nil
}
