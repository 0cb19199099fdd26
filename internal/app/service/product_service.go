package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// ListProducts retrieves all products
func (s *ProductService) ListProducts(ctx context.Context) domain.Result[[]domain.Product] {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	res := s.repo.List(ctx)
	if success, ok := res.(domain.Success[[]domain.Product]); ok {
		span.SetAttributes(attribute.Int("product.count", len(success.Value)))
	}
	observe(ctx, s, span, "list", res)
	return res
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) domain.Result[domain.Product] {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	res := s.repo.Get(ctx, id)
	observe(ctx, s, span, "read", res)
	return res
}

// CreateProduct validates the request and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (domain.Result[domain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	candidate, err := req.ToProduct()
	if err != nil {
		s.rejected(ctx, span, "create", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", candidate.Name()),
		attribute.String("product.price", candidate.Price().String()),
	)

	res, err := s.repo.Create(ctx, candidate)
	if err != nil {
		s.rejected(ctx, span, "create", err)
		return nil, err
	}

	if _, ok := res.(domain.Success[domain.Product]); ok {
		s.productCreatedCounter.Add(ctx, 1)
	}
	observe(ctx, s, span, "create", res)
	return res, nil
}

// UpdateProduct validates the request and replaces the product stored under id
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *dto.ProductRequest) (domain.Result[domain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	candidate, err := req.ToProduct()
	if err != nil {
		s.rejected(ctx, span, "update", err)
		return nil, err
	}

	res, err := s.repo.Update(ctx, id, candidate)
	if err != nil {
		s.rejected(ctx, span, "update", err)
		return nil, err
	}

	observe(ctx, s, span, "update", res)
	return res, nil
}

// DeleteProduct removes the product stored under id
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) domain.Result[struct{}] {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	res := s.repo.Delete(ctx, id)
	observe(ctx, s, span, "delete", res)
	return res
}

// observe records the outcome of an operation on the span, the logs and the operations counter
func observe[T any](ctx context.Context, s *ProductService, span trace.Span, operation string, res domain.Result[T]) {
	summary := domain.Summarize(res)
	outcome := domain.Match(res,
		func(domain.Success[T]) string {
			span.SetStatus(codes.Ok, summary)
			s.logger.InfoContext(ctx, "Product operation completed",
				slog.String("operation", operation),
				slog.String("result", summary),
			)
			return "success"
		},
		func(f domain.Failure[T]) string {
			span.SetStatus(codes.Error, f.Message)
			s.logger.WarnContext(ctx, "Product operation failed",
				slog.String("operation", operation),
				slog.String("result", summary),
			)
			if f.StatusCode == http.StatusNotFound {
				return "not_found"
			}
			return "failure"
		},
	)

	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", outcome),
		),
	)
}

func (s *ProductService) rejected(ctx context.Context, span trace.Span, operation string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "Validation failed")
	s.logger.WarnContext(ctx, "Product rejected",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", "invalid"),
		),
	)
}
