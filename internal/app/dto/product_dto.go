package dto

import (
	"encoding/json"

	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductRequest represents the request body to create or update a product
type ProductRequest struct {
	Name        *string          `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       int              `json:"stock"`
}

// ToProduct builds a product candidate, enforcing domain invariants
func (r *ProductRequest) ToProduct() (domain.Product, error) {
	var name string
	if r.Name != nil {
		name = *r.Name
	}
	var price decimal.Decimal
	if r.Price != nil {
		price = *r.Price
	}
	return domain.NewProduct(name, r.Description, price, r.Stock)
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID          *int64      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Available   bool        `json:"available"`
	Message     string      `json:"message,omitempty"`
}

// ProductListResponse represents a list of products
type ProductListResponse struct {
	Data  []*ProductResponse `json:"data"`
	Count int                `json:"count"`
}

// MessageResponse represents a response that carries only a message
type MessageResponse struct {
	Message string `json:"message"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p domain.Product) *ProductResponse {
	resp := &ProductResponse{
		Name:        p.Name(),
		Description: p.Description(),
		Price:       json.Number(p.Price().String()),
		Stock:       p.Stock(),
		Available:   p.Available(),
	}
	if id, ok := p.ID(); ok {
		resp.ID = &id
	}
	return resp
}

// ToProductListResponse converts a list of domain Products to ProductListResponse
func ToProductListResponse(products []domain.Product) *ProductListResponse {
	data := make([]*ProductResponse, len(products))
	for i, p := range products {
		data[i] = ToProductResponse(p)
	}
	return &ProductListResponse{Data: data, Count: len(data)}
}
