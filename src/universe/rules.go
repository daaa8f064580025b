package universe

//Neighbors holds the count of live Moore neighbours for every cell of a grid
type Neighbors struct {
	Rows   int
	Cols   int
	Counts []uint8
}

//At returns the neighbours count for the cell at row, col
func (n Neighbors) At(row int, col int) int {
	return int(n.Counts[row*n.Cols+col])
}

//CountNeighbors calculates the live neighbours of every cell
//positions outside the grid are dead, there is no wraparound
func CountNeighbors(g Grid) Neighbors {
	n := Neighbors{Rows: g.Rows, Cols: g.Cols, Counts: make([]uint8, len(g.Cells))}
	countNeighbors(g, n.Counts)
	return n
}

//countNeighbors writes the counts into the caller buffer, len(counts) must be len(g.Cells)
func countNeighbors(g Grid, counts []uint8) {
	for y := 0; y < g.Rows; y++ {
		minY := max(0, y-1)
		maxY := min(g.Rows-1, y+1)
		for x := 0; x < g.Cols; x++ {
			minX := max(0, x-1)
			maxX := min(g.Cols-1, x+1)
			var live uint8
			for ny := minY; ny <= maxY; ny++ {
				row := g.Cells[ny*g.Cols : (ny+1)*g.Cols]
				for nx := minX; nx <= maxX; nx++ {
					//skip my position
					if nx == x && ny == y {
						continue
					}
					if row[nx] {
						live++
					}
				}
			}
			counts[y*g.Cols+x] = live
		}
	}
}

//NextState calculates the next state for the cell with the given live neighbours count
func NextState(liveNeighbours int, state Cell) Cell {
	if liveNeighbours < 2 || liveNeighbours > 3 {
		return Dead
	}
	if liveNeighbours == 3 {
		return Alive
	}
	//two neighbours keep the cell as it is
	return state
}

//ApplyRules writes the next generation of cur into next
//next must have the same dimension and must not share the buffer with cur
func ApplyRules(cur Grid, n Neighbors, next Grid) {
	applyRules(cur.Cells, n.Counts, next.Cells)
}

func applyRules(cur []Cell, counts []uint8, next []Cell) {
	for i, c := range cur {
		next[i] = NextState(int(counts[i]), c)
	}
}

//Changed reports whether any cell of a differs from b
func Changed(a Grid, b Grid) bool {
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			return true
		}
	}
	return false
}
