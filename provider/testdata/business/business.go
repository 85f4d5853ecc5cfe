// Package business is a directory of businesses and the people who own
// them, served through generic API types.
package business

import (
	"context"
	"time"

	"github.com/broady/opschema/provider/testdata/crud"
)

// Business is a company listed in the directory.
type Business struct {
	ID      BusinessID
	Name    string
	Founded time.Time
}

// Person owns businesses.
type Person struct {
	Name string
}

// BusinessID identifies a business.
type BusinessID string

// Page is one page of results.
type Page[T any] struct {
	Items []T
	Total int
}

// Queryable is implemented by every directory API.
type Queryable[E, ID any] interface {
	// AllWithQuery returns the entities matching query.
	//graphql:query
	AllWithQuery(ctx context.Context, query string) ([]E, error)
}

// AbstractAPI serves entities of type E keyed by ID.
type AbstractAPI[E, ID any] struct {
	Queryable[E, ID]
	values map[string]E
}

// GetAll returns every entity.
//
//graphql:query
//graphql:nonnullelements
func (a *AbstractAPI[E, ID]) GetAll() []E {
	out := make([]E, 0, len(a.values))
	for _, v := range a.values {
		out = append(out, v)
	}
	return out
}

// SetEntity stores an entity.
//
//graphql:mutation
//graphql:arg index=1 name=input nonnull=true
func (a *AbstractAPI[E, ID]) SetEntity(ctx context.Context, entity E) (E, error) {
	return entity, nil
}

// Total is not exposed.
func (a *AbstractAPI[E, ID]) Total() int {
	return len(a.values)
}

// BusinessAPI serves businesses.
//
//graphql:api
type BusinessAPI struct {
	AbstractAPI[Business, BusinessID]
}

// Owner resolves the owner of a business.
//
//graphql:source b
//graphql:description The person owning the business
func (BusinessAPI) Owner(ctx context.Context, b Business) (*Person, error) {
	return &Person{}, nil
}

// Founded returns the founding date of a business.
//
//graphql:source
//graphql:format type=date pattern=2006-01-02
func (BusinessAPI) Founded(b Business) time.Time {
	return b.Founded
}

// Paged re-parameterizes AbstractAPI under a new name.
type Paged[T any] struct {
	AbstractAPI[T, int]
}

// Page returns a page of entities.
//
//graphql:query
//graphql:arg param=limit default=20
func (p *Paged[T]) Page(offset, limit int) Page[T] {
	return Page[T]{}
}

// PersonAPI serves people.
//
//graphql:api
type PersonAPI struct {
	Paged[Person]
	crud.Store[Person, string]
}

// Count shadows the promoted crud method and is not exposed.
//
//graphql:ignore
func (PersonAPI) Count() int {
	return 0
}
