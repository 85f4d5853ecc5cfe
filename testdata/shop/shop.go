// Package shop is a small catalog served through a generic repository.
package shop

import (
	"context"
	"time"
)

// SKU identifies a product.
type SKU string

// Product is an item in the catalog.
type Product struct {
	SKU   SKU
	Name  string
	Price float64
	Added time.Time
}

// Review is a customer review of a product.
type Review struct {
	Stars int
	Text  string
}

// Repository stores entities of type E keyed by K.
type Repository[E any, K comparable] struct {
	items map[K]E
}

// Get returns the entity stored under id.
//
//graphql:query
func (r *Repository[E, K]) Get(ctx context.Context, id K) (*E, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// List returns up to limit entities.
//
//graphql:query
//graphql:nonnullelements
//graphql:arg param=limit default=10
func (r *Repository[E, K]) List(limit int) []E {
	out := make([]E, 0, limit)
	for _, e := range r.items {
		if len(out) == limit {
			break
		}
		out = append(out, e)
	}
	return out
}

// Save stores an entity.
//
//graphql:mutation
//graphql:arg index=1 name=input nonnull=true
func (r *Repository[E, K]) Save(ctx context.Context, e E) (E, error) {
	return e, nil
}

// ProductAPI serves the catalog.
//
//graphql:api
type ProductAPI struct {
	Repository[Product, SKU]
}

// Reviews lists the reviews of a product.
//
//graphql:source p
//graphql:name reviews
func (ProductAPI) Reviews(ctx context.Context, p Product, first int) ([]Review, error) {
	return nil, nil
}

// HasStock reports whether a product is in stock.
//
//graphql:query
func (ProductAPI) HasStock(sku SKU) bool {
	return false
}
