//Package seed provides the initial grids for the universe
package seed

import "imagelife/src/universe"

//Supplier produces the initial grid of the given dimension
type Supplier interface {
	Seed(rows int, cols int) (universe.Grid, error)
}

//SupplierFunc adapts the ordinary function to the Supplier interface
type SupplierFunc func(rows int, cols int) (universe.Grid, error)

func (f SupplierFunc) Seed(rows int, cols int) (universe.Grid, error) {
	return f(rows, cols)
}
