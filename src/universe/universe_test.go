package universe

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type frame struct {
	st Status
	g  Grid
}

//recorder keeps a copy of every refreshed frame
type recorder struct {
	frames []frame
}

func (r *recorder) record(st Status, g Grid) {
	r.frames = append(r.frames, frame{st, g.Clone()})
}

func newTestUniverse(t *testing.T, m [][]int, maxGenerations int) (*Universe, *recorder) {
	t.Helper()
	o := DefaultUniverseOptions
	o.Interval = 0
	o.MaxGenerations = maxGenerations
	u, err := NewUniverse(&o, mustGrid(t, m))
	if err != nil {
		t.Fatalf("NewUniverse: %v", err)
	}
	r := &recorder{}
	u.RegisterViewer(ViewerFunc(r.record))
	return u, r
}

var blinker = [][]int{
	{0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0},
	{0, 1, 1, 1, 0},
	{0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0},
}

func TestNewUniverse_Validation(t *testing.T) {
	o := DefaultUniverseOptions
	if _, err := NewUniverse(&o, Grid{Rows: 2, Cols: 2, Cells: make([]Cell, 3)}); err == nil {
		t.Error("mismatched buffer accepted")
	}
	if _, err := NewUniverse(&o, NewGrid(0, 3)); err == nil {
		t.Error("empty grid accepted")
	}
	o.MaxGenerations = 0
	if _, err := NewUniverse(&o, NewGrid(3, 3)); err == nil {
		t.Error("zero generation cap accepted")
	}
}

func TestNewUniverse_CopiesSeed(t *testing.T) {
	seed := mustGrid(t, blinker)
	u, err := NewUniverse(nil, seed)
	if err != nil {
		t.Fatal(err)
	}
	seed.Set(0, 0, Alive)
	if u.Current().At(0, 0) {
		t.Fatal("universe shares the seed buffer")
	}
	st := u.Status()
	if st.RunningMode != RunningStateInitializing || st.Generation != 1 || st.LiveCells != 3 {
		t.Fatalf("unexpected initial status %+v", st)
	}
	if u.Options().MaxGenerations != DefMaxGenerations || u.Options().Interval != DefSimulationInterval {
		t.Fatalf("unexpected default options %+v", u.Options())
	}
}

func TestRun_BlockConvergesImmediately(t *testing.T) {
	u, r := newTestUniverse(t, [][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	}, DefMaxGenerations)

	st, err := u.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.RunningMode != RunningStateConverged || st.Generation != 1 {
		t.Fatalf("got %+v", st)
	}
	if len(r.frames) != 1 || r.frames[0].st.RunningMode != RunningStateConverged {
		t.Fatalf("expected only the final frame, got %v frames", len(r.frames))
	}
}

func TestRun_SingleCellDiesThenConverges(t *testing.T) {
	m := make([][]int, 5)
	for i := range m {
		m[i] = make([]int, 5)
	}
	m[2][2] = 1
	u, r := newTestUniverse(t, m, DefMaxGenerations)

	st, err := u.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.RunningMode != RunningStateConverged || st.Generation != 2 || st.LiveCells != 0 {
		t.Fatalf("got %+v", st)
	}
	if len(r.frames) != 2 {
		t.Fatalf("got %v frames, want 2", len(r.frames))
	}
	if r.frames[0].st.Generation != 1 || r.frames[0].g.LiveCells() != 1 {
		t.Errorf("first frame %+v", r.frames[0].st)
	}
	if r.frames[1].st.Generation != 2 || r.frames[1].g.LiveCells() != 0 {
		t.Errorf("final frame %+v", r.frames[1].st)
	}
}

func TestRun_BlinkerRunsToCap(t *testing.T) {
	const limit = 25
	u, r := newTestUniverse(t, blinker, limit)

	st, err := u.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.RunningMode != RunningStateCapped || st.Generation != limit {
		t.Fatalf("got %+v", st)
	}
	//every generation plus the final frame
	if len(r.frames) != limit+1 {
		t.Fatalf("got %v frames, want %v", len(r.frames), limit+1)
	}
	for i := 0; i < limit; i++ {
		f := r.frames[i]
		if f.st.Generation != i+1 {
			t.Fatalf("frame %v has generation %v", i, f.st.Generation)
		}
		if f.st.Generation > limit {
			t.Fatalf("generation %v exceeds the cap", f.st.Generation)
		}
		if f.st.RunningMode != RunningStateRunning {
			t.Fatalf("frame %v is %v", i, f.st.RunningMode)
		}
		horizontal := bool(f.g.At(2, 1) && f.g.At(2, 3))
		if horizontal != (i%2 == 0) {
			t.Fatalf("frame %v has the wrong phase:\n%v", i, f.g)
		}
	}
	last := r.frames[limit]
	if last.st.RunningMode != RunningStateCapped || last.st.Generation != limit {
		t.Fatalf("final frame %+v", last.st)
	}
}

func TestRun_Twice(t *testing.T) {
	u, _ := newTestUniverse(t, blinker, 2)
	if _, err := u.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := u.Run(context.Background()); err == nil {
		t.Fatal("second run accepted")
	}
}

func TestRun_PacesBetweenFrames(t *testing.T) {
	u, _ := newTestUniverse(t, blinker, 4)
	u.options.Interval = 150 * time.Millisecond
	var pauses []time.Duration
	u.pause = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}
	if _, err := u.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	//no pause after the last capped frame
	if len(pauses) != 3 {
		t.Fatalf("got %v pauses, want 3", len(pauses))
	}
	for _, d := range pauses {
		if d != 150*time.Millisecond {
			t.Fatalf("paused for %v", d)
		}
	}
}

func TestRun_Interrupted(t *testing.T) {
	u, r := newTestUniverse(t, blinker, DefMaxGenerations)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := u.Run(ctx)
	if errors.Cause(err) != context.Canceled {
		t.Fatalf("got error %v", err)
	}
	if st.RunningMode != RunningStateInterrupted || st.Generation != 1 {
		t.Fatalf("got %+v", st)
	}
	if len(r.frames) != 2 || !r.frames[1].st.RunningMode.Finished() {
		t.Fatalf("got %v frames", len(r.frames))
	}
}

func TestSleep(t *testing.T) {
	if err := sleep(context.Background(), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Hour); err != context.Canceled {
		t.Fatalf("got %v", err)
	}
}
