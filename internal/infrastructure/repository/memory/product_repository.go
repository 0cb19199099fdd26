package memory

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	MessageCreated = "created"
	MessageUpdated = "updated"
	MessageDeleted = "deleted"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   atomic.Int64
	tracer   trace.Tracer
	logger   *slog.Logger
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new in-memory product repository pre-populated with the seed catalog
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	r := &ProductRepository{
		products: make(map[int64]domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
	r.nextID.Store(1)
	r.seed()
	return r
}

func (r *ProductRepository) seed() {
	seed := []struct {
		name, description, price string
		stock                    int
	}{
		{"Laptop Pro 21", "High-performance laptop", "1299.99", 10},
		{"Wireless Mouse", "Ergonomic wireless mouse", "49.99", 50},
		{"Mechanical Keyboard", "Tactile switches, RGB backlight", "129.99", 25},
	}
	for _, s := range seed {
		id := r.mintID()
		p, err := domain.RestoreProduct(id, s.name, s.description, decimal.RequireFromString(s.price), s.stock)
		if err != nil {
			panic("memory: invalid seed product: " + err.Error())
		}
		r.products[id] = p
	}
}

// mintID hands out each identity exactly once
func (r *ProductRepository) mintID() int64 {
	return r.nextID.Add(1) - 1
}

// List returns a snapshot of all products
func (r *ProductRepository) List(ctx context.Context) domain.Result[[]domain.Product] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.List")
	defer span.End()

	r.mu.RLock()
	products := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	r.mu.RUnlock()

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return domain.Ok(products)
}

// Get retrieves a product by ID
func (r *ProductRepository) Get(ctx context.Context, id int64) domain.Result[domain.Product] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Get")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.RLock()
	product, exists := r.products[id]
	r.mu.RUnlock()

	if !exists {
		r.notFound(ctx, span, id)
		return domain.NotFound[domain.Product](id)
	}

	r.logger.DebugContext(ctx, "Product found in repository",
		slog.Int64("product_id", id),
		slog.String("product_name", product.Name()),
	)

	span.SetStatus(codes.Ok, "Product found")
	return domain.Ok(product)
}

// Create stores the candidate under a freshly minted identity.
// Any identity already on the candidate is ignored.
func (r *ProductRepository) Create(ctx context.Context, candidate domain.Product) (domain.Result[domain.Product], error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", candidate.Name()))

	if err := candidate.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid product")
		return nil, err
	}

	id := r.mintID()
	saved := candidate.WithID(id)

	r.mu.Lock()
	r.products[id] = saved
	r.mu.Unlock()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.Int64("product_id", id),
		slog.String("product_name", saved.Name()),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return domain.OkWithMessage(saved, MessageCreated), nil
}

// Update replaces the product stored under id with the candidate's fields
func (r *ProductRepository) Update(ctx context.Context, id int64, candidate domain.Product) (domain.Result[domain.Product], error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	if err := candidate.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid product")
		return nil, err
	}
	replacement := candidate.WithID(id)

	r.mu.Lock()
	_, exists := r.products[id]
	if exists {
		r.products[id] = replacement
	}
	r.mu.Unlock()

	if !exists {
		r.notFound(ctx, span, id)
		return domain.NotFound[domain.Product](id), nil
	}

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.Int64("product_id", id),
		slog.String("product_name", replacement.Name()),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return domain.OkWithMessage(replacement, MessageUpdated), nil
}

// Delete removes the product stored under id
func (r *ProductRepository) Delete(ctx context.Context, id int64) domain.Result[struct{}] {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	_, exists := r.products[id]
	delete(r.products, id)
	r.mu.Unlock()

	if !exists {
		r.notFound(ctx, span, id)
		return domain.NotFound[struct{}](id)
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.Int64("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return domain.OkWithMessage(struct{}{}, MessageDeleted)
}

func (r *ProductRepository) notFound(ctx context.Context, span trace.Span, id int64) {
	span.SetStatus(codes.Error, "Product not found")
	r.logger.WarnContext(ctx, "Product not found",
		slog.Int64("product_id", id),
	)
}
