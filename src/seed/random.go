package seed

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"imagelife/src/universe"
)

//DefOneIn is the default chance of the live cell: one of eight
const DefOneIn = 8

//Random settles the grid with random data, every cell is alive with probability 1/OneIn
type Random struct {
	Rand  *rand.Rand
	OneIn int
}

//NewRandom creates the random supplier seeded with the current time
func NewRandom() *Random {
	return &Random{Rand: rand.New(rand.NewSource(time.Now().UnixNano())), OneIn: DefOneIn}
}

func (s *Random) Seed(rows int, cols int) (universe.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return universe.Grid{}, errors.Errorf("[Random] invalid dimension %v x %v", rows, cols)
	}
	if s.OneIn < 1 {
		return universe.Grid{}, errors.Errorf("[Random] invalid chance 1/%v", s.OneIn)
	}
	g := universe.NewGrid(rows, cols)
	for i := range g.Cells {
		g.Cells[i] = s.Rand.Intn(s.OneIn) == 0
	}
	return g, nil
}
