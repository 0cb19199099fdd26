package domain

import (
	"context"
	"fmt"
	"net/http"
)

// NotFoundMessage is the failure message for a missing product identity
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("entity with id %d not found", id)
}

// NotFound builds the failure returned for a missing product identity
func NotFound[T any](id int64) Result[T] {
	return Fail[T](http.StatusNotFound, NotFoundMessage(id))
}

// ProductRepository defines the contract for product storage.
// Missing identities are reported as a Failure result; the error return
// is reserved for invariant violations of the supplied candidate.
type ProductRepository interface {
	List(ctx context.Context) Result[[]Product]
	Get(ctx context.Context, id int64) Result[Product]
	Create(ctx context.Context, candidate Product) (Result[Product], error)
	Update(ctx context.Context, id int64, candidate Product) (Result[Product], error)
	Delete(ctx context.Context, id int64) Result[struct{}]
}
