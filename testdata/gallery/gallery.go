// Package gallery serves shapes through named types that are not structs.
package gallery

// Shape is anything with an area.
type Shape interface {
	Area() float64
}

// ID identifies a shape.
type ID string

// IDs lists shape identifiers.
type IDs []ID

// GalleryAPI serves shapes.
//
//graphql:api
type GalleryAPI struct {
	shapes map[ID]Shape
}

// GetShape returns the shape stored under id, or nil.
//
//graphql:query
func (g GalleryAPI) GetShape(id ID) Shape {
	return g.shapes[id]
}

// GetID returns the identifier of the largest shape.
//
//graphql:query
func (g GalleryAPI) GetID() ID {
	var (
		best    ID
		largest float64
	)
	for id, s := range g.shapes {
		if a := s.Area(); a > largest {
			best, largest = id, a
		}
	}
	return best
}

// GetIDs returns every identifier.
//
//graphql:query
func (g GalleryAPI) GetIDs() IDs {
	out := make(IDs, 0, len(g.shapes))
	for id := range g.shapes {
		out = append(out, id)
	}
	return out
}
