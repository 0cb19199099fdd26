package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter() *chi.Mux {
	logger := slog.New(slog.DiscardHandler)
	tracer := noop.NewTracerProvider().Tracer("test")
	repo := memory.NewProductRepository(tracer, logger)
	svc := service.NewProductService(repo, tracer, metricnoop.NewMeterProvider().Meter("test"), logger)
	h := NewProductHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
	return r
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func Test_ProductHandler_GetProduct(t *testing.T) {
	testCases := []struct {
		name         string
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			productID:    "2",
			expectedCode: http.StatusOK,
			expectedBody: `{"id":2,"name":"Wireless Mouse","description":"Ergonomic wireless mouse","price":49.99,"stock":50,"available":true,"message":"OK"}`,
		},
		{
			name:         "Error - product not found",
			productID:    "999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"entity with id 999 not found","status":404}`,
		},
		{
			name:         "Error - invalid id",
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid product id: abc","status":400}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			router := newTestRouter()

			// when
			rr := serve(router, http.MethodGet, "/api/products/"+tc.productID, "")

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductHandler_ListProducts(t *testing.T) {
	// given
	router := newTestRouter()
	serve(router, http.MethodDelete, "/api/products/1", "")
	serve(router, http.MethodDelete, "/api/products/3", "")

	// when
	rr := serve(router, http.MethodGet, "/api/products", "")

	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"data":[{"id":2,"name":"Wireless Mouse","description":"Ergonomic wireless mouse","price":49.99,"stock":50,"available":true}],"count":1}`,
		rr.Body.String())
}

func Test_ProductHandler_CreateProduct(t *testing.T) {
	testCases := []struct {
		name         string
		requestBody  string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			requestBody:  `{"name":"Test Item","price":9.99,"stock":5}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":4,"name":"Test Item","description":"","price":9.99,"stock":5,"available":true,"message":"created"}`,
		},
		{
			name:         "Success - stock defaults to zero",
			requestBody:  `{"name":"Preorder","description":"soon","price":"19.90"}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":4,"name":"Preorder","description":"soon","price":19.9,"stock":0,"available":false,"message":"created"}`,
		},
		{
			name:         "Success - identity in body is ignored",
			requestBody:  `{"id":1,"name":"Test Item","price":1,"stock":1}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":4,"name":"Test Item","description":"","price":1,"stock":1,"available":true,"message":"created"}`,
		},
		{
			name:         "Error - blank name",
			requestBody:  `{"name":"  ","price":9.99,"stock":5}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"product name must not be blank","status":400}`,
		},
		{
			name:         "Error - negative price",
			requestBody:  `{"name":"Test Item","price":-1,"stock":5}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"price must be non-negative","status":400}`,
		},
		{
			name:         "Error - negative stock",
			requestBody:  `{"name":"Test Item","price":1,"stock":-5}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"stock must be non-negative","status":400}`,
		},
		{
			name:         "Error - missing price",
			requestBody:  `{"name":"Test Item","stock":5}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body: field price failed on rule: required","status":400}`,
		},
		{
			name:         "Error - missing name",
			requestBody:  `{"price":1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body: field name failed on rule: required","status":400}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			router := newTestRouter()

			// when
			rr := serve(router, http.MethodPost, "/api/products", tc.requestBody)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductHandler_CreateProduct_MalformedBody(t *testing.T) {
	rr := serve(newTestRouter(), http.MethodPost, "/api/products", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid request body: ")
}

func Test_ProductHandler_UpdateProduct(t *testing.T) {
	testCases := []struct {
		name         string
		productID    string
		requestBody  string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product updated",
			productID:    "1",
			requestBody:  `{"name":"Laptop Pro 22","description":"Refreshed","price":1499.5,"stock":0}`,
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"Laptop Pro 22","description":"Refreshed","price":1499.5,"stock":0,"available":false,"message":"updated"}`,
		},
		{
			name:         "Error - product not found",
			productID:    "99",
			requestBody:  `{"name":"Ghost","price":1,"stock":1}`,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"entity with id 99 not found","status":404}`,
		},
		{
			name:         "Error - invariant violation",
			productID:    "1",
			requestBody:  `{"name":"Laptop","price":1,"stock":-1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"stock must be non-negative","status":400}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			router := newTestRouter()

			// when
			rr := serve(router, http.MethodPut, "/api/products/"+tc.productID, tc.requestBody)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductHandler_DeleteProduct(t *testing.T) {
	// given
	router := newTestRouter()

	// when
	first := serve(router, http.MethodDelete, "/api/products/2", "")
	second := serve(router, http.MethodDelete, "/api/products/2", "")
	get := serve(router, http.MethodGet, "/api/products/2", "")

	// then
	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"message":"deleted"}`, first.Body.String())
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.JSONEq(t, `{"error":"entity with id 2 not found","status":404}`, second.Body.String())
	assert.Equal(t, http.StatusNotFound, get.Code)
}
