package business

// Shape is anything with an area.
type Shape interface {
	Area() float64
}

// BusinessIDs lists business identifiers.
type BusinessIDs []BusinessID

// Listing indexes businesses by identifier.
type Listing map[BusinessID]*Business

// Tree nests itself.
type Tree []Tree

// Catalog returns named types of every kind. It is not an API type.
type Catalog struct{}

func (Catalog) Shape() Shape { return nil }

func (Catalog) IDs() BusinessIDs { return nil }

func (Catalog) Listing() Listing { return nil }

func (Catalog) Tree() Tree { return nil }

func (Catalog) Business() Business { return Business{} }
