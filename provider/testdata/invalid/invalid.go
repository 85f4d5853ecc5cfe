// Package invalid holds API types that cannot be turned into operations.
package invalid

// BrokenAPI has methods that are rejected by the operation builder.
//
//graphql:api
type BrokenAPI struct{}

//graphql:query
func (BrokenAPI) hidden() string {
	return ""
}

// Reset returns nothing.
//
//graphql:mutation
func (BrokenAPI) Reset() {}

// Ping is fine.
//
//graphql:query
func (BrokenAPI) Ping() string {
	return "pong"
}

// GenericAPI cannot be resolved without type arguments.
//
//graphql:api
type GenericAPI[T any] struct{}

//graphql:query
func (GenericAPI[T]) Item() T {
	var zero T
	return zero
}

type left struct{}

//graphql:query
func (left) Name() string {
	return "left"
}

func (left) Size() int {
	return 0
}

type right struct{}

//graphql:query
func (right) Name() string {
	return "right"
}

func (right) Size() int {
	return 1
}

// AmbiguousAPI promotes Name and Size from two types at the same depth.
//
//graphql:api
type AmbiguousAPI struct {
	left
	right
}
