package universe

import (
	"bytes"

	"github.com/pkg/errors"
)

type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

//Grid is the field where cells are living
//cells are stored in a single buffer, row by row: Cells[row*Cols+col]
type Grid struct {
	Rows  int
	Cols  int
	Cells []Cell
}

//NewGrid allocates the grid with all cells dead
func NewGrid(rows int, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Cells: make([]Cell, rows*cols)}
}

//GridFromRows builds the grid from the 0/1 matrix
//any non zero value is treated as a live cell, the matrix must be rectangular
func GridFromRows(m [][]int) (Grid, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return Grid{}, errors.New("[GridFromRows] empty matrix")
	}
	g := NewGrid(len(m), len(m[0]))
	for r, line := range m {
		if len(line) != g.Cols {
			return Grid{}, errors.Errorf("[GridFromRows] row %d has %d columns, expected %d", r, len(line), g.Cols)
		}
		for c, v := range line {
			g.Cells[g.Index(r, c)] = v != 0
		}
	}
	return g, nil
}

//Index returns the buffer position of the cell at row, col
func (g Grid) Index(row int, col int) int {
	return row*g.Cols + col
}

//At returns the cell state, positions outside the grid are dead
func (g Grid) At(row int, col int) Cell {
	if row < 0 || col < 0 || row >= g.Rows || col >= g.Cols {
		return Dead
	}
	return g.Cells[g.Index(row, col)]
}

//Set places the cell state at row, col, positions outside the grid are ignored
func (g Grid) Set(row int, col int, c Cell) {
	if row < 0 || col < 0 || row >= g.Rows || col >= g.Cols {
		return
	}
	g.Cells[g.Index(row, col)] = c
}

//Row returns the cells of one row, the slice shares the grid buffer
func (g Grid) Row(row int) []Cell {
	start := row * g.Cols
	return g.Cells[start : start+g.Cols : start+g.Cols]
}

//LiveCells calculates the count of live cells
func (g Grid) LiveCells() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

//Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	c := Grid{Rows: g.Rows, Cols: g.Cols, Cells: make([]Cell, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

//Validate checks the dimensions against the buffer
func (g Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return errors.Errorf("[Grid] invalid dimension %v x %v", g.Rows, g.Cols)
	}
	if len(g.Cells) != g.Rows*g.Cols {
		return errors.Errorf("[Grid] buffer holds %d cells, dimension %v x %v needs %d", len(g.Cells), g.Rows, g.Cols, g.Rows*g.Cols)
	}
	return nil
}

//String draws the grid with '@' for live and '.' for dead cells, one row per line
func (g Grid) String() string {
	var b bytes.Buffer
	for r := 0; r < g.Rows; r++ {
		for _, c := range g.Row(r) {
			if c {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
