package domain

import (
	"fmt"
	"reflect"
)

// DefaultSuccessMessage is the message carried by Ok results
const DefaultSuccessMessage = "OK"

// Result is the outcome of a repository operation.
// It is implemented only by Success and Failure.
type Result[T any] interface {
	isResult(T)
}

// Success carries the produced value and a human-readable message
type Success[T any] struct {
	Value   T
	Message string
}

// Failure carries a status code and an error message
type Failure[T any] struct {
	StatusCode int
	Message    string
}

func (Success[T]) isResult(T) {}
func (Failure[T]) isResult(T) {}

// Ok wraps a value in a Success with the default message
func Ok[T any](value T) Result[T] {
	return Success[T]{Value: value, Message: DefaultSuccessMessage}
}

// OkWithMessage wraps a value in a Success with a custom message
func OkWithMessage[T any](value T, message string) Result[T] {
	return Success[T]{Value: value, Message: message}
}

// Fail builds a Failure result
func Fail[T any](statusCode int, message string) Result[T] {
	return Failure[T]{StatusCode: statusCode, Message: message}
}

// Match folds a result into a single value, calling exactly one of the handlers
func Match[T, R any](r Result[T], onSuccess func(Success[T]) R, onFailure func(Failure[T]) R) R {
	switch v := r.(type) {
	case Success[T]:
		return onSuccess(v)
	case Failure[T]:
		return onFailure(v)
	default:
		panic(fmt.Sprintf("domain: unreachable result variant %T", r))
	}
}

// Summarize renders a result for logs
func Summarize[T any](r Result[T]) string {
	return Match(r,
		func(s Success[T]) string { return "SUCCESS: " + s.Message },
		func(f Failure[T]) string { return fmt.Sprintf("ERROR %d: %s", f.StatusCode, f.Message) },
	)
}

// Describe renders a result as an operation status line
func Describe[T any](r Result[T]) string {
	return Match(r,
		func(s Success[T]) string {
			if isZero(s.Value) {
				return "Operation succeeded with no content"
			}
			return "Operation succeeded: " + s.Message
		},
		func(f Failure[T]) string {
			return fmt.Sprintf("Operation failed [%d]: %s", f.StatusCode, f.Message)
		},
	)
}

func isZero[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	return rv.IsZero()
}
