package universe

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

//Options represents the Universe's configurable options
type Options struct {
	Rows           int
	Cols           int
	Interval       time.Duration
	MaxGenerations int
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data
//the grid is owned by the universe and is valid only during the Refresh call
type Viewer interface {
	Refresh(st Status, g Grid)
}

//ViewerFunc adapts the ordinary function to the Viewer interface
type ViewerFunc func(st Status, g Grid)

func (f ViewerFunc) Refresh(st Status, g Grid) {
	f(st, g)
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 200
	DefMaxGenerations     = 5000
	DefRows               = 30
	DefCols               = 60
)

const (
	RunningStateInitializing RunningState = iota
	RunningStateRunning
	RunningStateConverged
	RunningStateCapped
	RunningStateInterrupted
)

var runningStateNames = map[RunningState]string{
	RunningStateInitializing: "initializing",
	RunningStateRunning:      "running",
	RunningStateConverged:    "converged",
	RunningStateCapped:       "capped",
	RunningStateInterrupted:  "interrupted",
}

func (s RunningState) String() string {
	if n, ok := runningStateNames[s]; ok {
		return n
	}
	return "unknown"
}

//Finished reports whether the state is terminal
func (s RunningState) Finished() bool {
	return s == RunningStateConverged || s == RunningStateCapped || s == RunningStateInterrupted
}

var DefaultUniverseOptions = Options{
	Rows:           DefRows,
	Cols:           DefCols,
	Interval:       DefSimulationInterval,
	MaxGenerations: DefMaxGenerations,
}

//Universe is the simulation engine
//it owns two equally sized grids, the current generation and the next one,
//the roles are exchanged after every step, cell data is never copied
type Universe struct {
	options Options
	state   Status
	cur     Grid
	next    Grid
	counts  []uint8
	views   []Viewer
	pause   func(ctx context.Context, d time.Duration) error
}

//NewUniverse creates the universe seeded with a copy of the grid
//the dimension is validated here once, the loop never checks it again
func NewUniverse(o *Options, seed Grid) (*Universe, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	if err := seed.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewUniverse] bad seed")
	}
	if o.MaxGenerations < 1 {
		return nil, errors.Errorf("[NewUniverse] max generations must be positive, got %v", o.MaxGenerations)
	}
	if o.Interval < 0 {
		return nil, errors.Errorf("[NewUniverse] negative interval %v", o.Interval)
	}

	u := Universe{
		options: *o,
		cur:     seed.Clone(),
		next:    NewGrid(seed.Rows, seed.Cols),
		counts:  make([]uint8, len(seed.Cells)),
		pause:   sleep,
	}
	u.options.Rows = seed.Rows
	u.options.Cols = seed.Cols
	u.state.Generation = 1
	u.state.RunningMode = RunningStateInitializing
	u.state.LiveCells = u.cur.LiveCells()
	return &u, nil
}

//RegisterViewer registers the viewer - the universe will call the viewer on every generation
func (u *Universe) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
}

//Status returns current universe status represented by Status struct
func (u *Universe) Status() Status {
	return u.state
}

//Options returns the universe configuration
func (u *Universe) Options() Options {
	return u.options
}

//Current returns the current generation, the grid shares the universe buffer
func (u *Universe) Current() Grid {
	return u.cur
}

//Run runs the simulation until the grid stops changing or the generation limit is reached
//every generation is passed to the viewers, the final grid is passed once more on finish
//ctx is checked only while pausing between the frames
func (u *Universe) Run(ctx context.Context) (Status, error) {
	if u.state.RunningMode != RunningStateInitializing {
		return u.state, errors.Errorf("[Run] universe is %v", u.state.RunningMode)
	}
	u.state.RunningMode = RunningStateRunning

	for {
		if !u.nextIteration() {
			u.finish(RunningStateConverged)
			return u.state, nil
		}
		u.refreshView()
		if u.state.Generation >= u.options.MaxGenerations {
			u.finish(RunningStateCapped)
			return u.state, nil
		}
		if err := u.pause(ctx, u.options.Interval); err != nil {
			u.finish(RunningStateInterrupted)
			return u.state, errors.Wrapf(err, "[Run] interrupted at generation %v", u.state.Generation)
		}
		u.cur, u.next = u.next, u.cur
		u.state.Generation++
		u.state.LiveCells = u.cur.LiveCells()
	}
}

//nextIteration calculates the next generation into the next buffer
//returns false when it is identical to the current one
func (u *Universe) nextIteration() (changed bool) {
	start := time.Now()
	countNeighbors(u.cur, u.counts)
	applyRules(u.cur.Cells, u.counts, u.next.Cells)
	changed = Changed(u.cur, u.next)
	u.state.IterationTime = time.Since(start)
	return
}

func (u *Universe) finish(to RunningState) {
	u.state.RunningMode = to
	u.refreshView()
}

//refreshView calls Refresh for all registered views
func (u *Universe) refreshView() {
	for _, v := range u.views {
		v.Refresh(u.state, u.cur)
	}
}

//sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
