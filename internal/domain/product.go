package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrBlankName     = errors.New("product name must not be blank")
	ErrNegativePrice = errors.New("price must be non-negative")
	ErrNegativeStock = errors.New("stock must be non-negative")
)

// IsInvariantViolation reports whether err was produced by product construction
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrBlankName) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrNegativeStock)
}

// Product represents the product entity.
// Values are immutable; every With* method returns a new Product.
type Product struct {
	id          int64
	hasID       bool
	name        string
	description string
	price       decimal.Decimal
	stock       int
}

// NewProduct creates a product candidate without an identity
func NewProduct(name, description string, price decimal.Decimal, stock int) (Product, error) {
	p := Product{
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// RestoreProduct creates a product that already carries an identity
func RestoreProduct(id int64, name, description string, price decimal.Decimal, stock int) (Product, error) {
	p, err := NewProduct(name, description, price, stock)
	if err != nil {
		return Product{}, err
	}
	return p.WithID(id), nil
}

// Validate performs business validation on the product
func (p Product) Validate() error {
	if strings.TrimSpace(p.name) == "" {
		return ErrBlankName
	}
	if p.price.IsNegative() {
		return ErrNegativePrice
	}
	if p.stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// ID returns the identity and whether one has been assigned
func (p Product) ID() (int64, bool) {
	return p.id, p.hasID
}

func (p Product) Name() string { return p.name }
func (p Product) Description() string { return p.description }
func (p Product) Price() decimal.Decimal { return p.price }
func (p Product) Stock() int { return p.stock }

// Available reports whether the product is in stock
func (p Product) Available() bool {
	return p.stock > 0
}

// WithID returns a copy of the product carrying the given identity
func (p Product) WithID(id int64) Product {
	p.id = id
	p.hasID = true
	return p
}

// WithStock returns a copy of the product with a new stock level
func (p Product) WithStock(stock int) (Product, error) {
	p.stock = stock
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// WithPrice returns a copy of the product with a new price
func (p Product) WithPrice(price decimal.Decimal) (Product, error) {
	p.price = price
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
