package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service  *service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &ProductHandler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	res := h.service.ListProducts(r.Context())
	domain.Match(res,
		func(s domain.Success[[]domain.Product]) struct{} {
			response.JSON(w, http.StatusOK, dto.ToProductListResponse(s.Value))
			return struct{}{}
		},
		func(f domain.Failure[[]domain.Product]) struct{} {
			response.Error(w, f.StatusCode, f.Message)
			return struct{}{}
		},
	)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	writeProduct(w, http.StatusOK, h.service.GetProduct(r.Context(), id))
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	res, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeProduct(w, http.StatusCreated, res)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	res, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeProduct(w, http.StatusOK, res)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	res := h.service.DeleteProduct(r.Context(), id)
	domain.Match(res,
		func(s domain.Success[struct{}]) struct{} {
			response.JSON(w, http.StatusOK, dto.MessageResponse{Message: s.Message})
			return struct{}{}
		},
		func(f domain.Failure[struct{}]) struct{} {
			response.Error(w, f.StatusCode, f.Message)
			return struct{}{}
		},
	)
}

// writeProduct projects a product result onto the response, using status on success
func writeProduct(w http.ResponseWriter, status int, res domain.Result[domain.Product]) {
	domain.Match(res,
		func(s domain.Success[domain.Product]) struct{} {
			body := dto.ToProductResponse(s.Value)
			body.Message = s.Message
			response.JSON(w, status, body)
			return struct{}{}
		},
		func(f domain.Failure[domain.Product]) struct{} {
			response.Error(w, f.StatusCode, f.Message)
			return struct{}{}
		},
	)
}

func (h *ProductHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		response.Error(w, http.StatusBadRequest, "Missing product id in path")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid product id",
			slog.String("product_id", raw),
		)
		response.Error(w, http.StatusBadRequest, "Invalid product id: "+raw)
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*dto.ProductRequest, bool) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			h.logger.WarnContext(r.Context(), "Request validation failed",
				slog.String("field", fieldErr.Field()),
				slog.String("rule", fieldErr.Tag()),
			)
			response.Error(w, http.StatusBadRequest,
				"Invalid request body: field "+fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
			return nil, false
		}
		response.Error(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	return &req, true
}

func (h *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsInvariantViolation(err) {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "Unexpected product error",
		slog.String("error", err.Error()),
	)
	response.Error(w, http.StatusInternalServerError, err.Error())
}
