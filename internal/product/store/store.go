// Package store provides an interface for product storage operations.
package store

// ProductStore is an interface for product storage operations.
// Every mutating operation rewrites the whole collection to storage before it returns.
type ProductStore interface {
	// AddProduct validates the input, assigns a new ID and appends the product.
	// Returns a ValidationError if a field is missing or invalid or the code is taken.
	AddProduct(p NewProduct) (*Product, error)

	// GetProducts returns a copy of all products in stored order.
	// Returns an empty slice if no products exist.
	GetProducts() []Product

	// GetProductByID retrieves a single product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	GetProductByID(id int) (*Product, error)

	// UpdateProduct overwrites the fields set in the patch, keeping the rest.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateProduct(id int, patch ProductPatch) (*Product, error)

	// DeleteProduct removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteProduct(id int) error
}

// Product represents a product entity in the store.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"` // image path or URL
	Code        string  `json:"code"`
	Stock       int     `json:"stock"`
}

// NewProduct is the input for AddProduct.
// Stock is a float64 so fractional values are rejected instead of truncated.
type NewProduct struct {
	Title       string  `json:"title"       validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Price       float64 `json:"price"       validate:"required,gt=0,finite"`
	Thumbnail   string  `json:"thumbnail"   validate:"notblank"`
	Code        string  `json:"code"        validate:"required"`
	Stock       float64 `json:"stock"       validate:"required,gt=0,finite,wholenumber,intrange"`
}

// ProductPatch is the input for UpdateProduct. Nil fields are left unchanged.
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Code        *string  `json:"code,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// apply merges the patch onto p.
func (patch ProductPatch) apply(p *Product) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Thumbnail != nil {
		p.Thumbnail = *patch.Thumbnail
	}
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
}
