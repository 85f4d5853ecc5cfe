// Package crud provides a generic repository API embedded by the fixtures
// in sibling packages.
package crud

import "context"

// Store keeps entities of type E keyed by ID.
type Store[E any, ID comparable] struct {
	items map[ID]E
}

// Find returns the entity with the given id.
//
//graphql:query
func (s *Store[E, ID]) Find(ctx context.Context, id ID) (*E, error) {
	e, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// Count returns the number of stored entities.
//
//graphql:query
//graphql:nonnull
func (s *Store[X, Y]) Count() int {
	return len(s.items)
}
