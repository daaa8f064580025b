package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"imagelife/src/universe"
)

//ErrQuit is returned by ConsoleUI.Start when the user closes the UI
var ErrQuit = gocui.ErrQuit

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
//Refresh is safe to call from the simulation goroutine, drawing is done by the gocui main loop
type ConsoleUI struct {
	g *gocui.Gui
	k []keyBindings

	liveFiller string
	deadFiller string

	mu      sync.Mutex
	options universe.Options
	status  universe.Status
	field   universe.Grid

	restartCh chan struct{}
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateInitializing: aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateRunning:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateConverged:    aurora.Colorize("converged", aurora.GreenFg).String(),
		universe.RunningStateCapped:       aurora.Colorize("generation limit", aurora.RedFg).String(),
		universe.RunningStateInterrupted:  aurora.Colorize("interrupted", aurora.RedFg).String(),
	}
)

//NewConsoleUI initializes the terminal, the caller must call Start to run the UI
func NewConsoleUI() (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
		restartCh:  make(chan struct{}, 1),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to init the terminal")
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC,
			"^C",
			"Exit",
			t.cmdQuit,
			""},
		{'r',
			"R",
			"Run again",
			t.cmdRunAgain,
			""},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] key %v", kb.name)
		}
	}
	return nil
}

//Start runs the UI main loop until the user quits, returns ErrQuit in this case
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	return t.g.MainLoop()
}

//Stop closes the UI from any goroutine, Start returns ErrQuit
func (t *ConsoleUI) Stop() {
	t.update(func(g *gocui.Gui) error {
		return gocui.ErrQuit
	})
}

//update schedules f on the gocui main loop, nothing is drawn without the terminal
func (t *ConsoleUI) update(f func(*gocui.Gui) error) {
	if t.g == nil {
		return
	}
	t.g.Update(f)
}

//RestartCh delivers the user's requests to run the simulation again
func (t *ConsoleUI) RestartCh() <-chan struct{} {
	return t.restartCh
}

//Configure sets the configuration of the new run
func (t *ConsoleUI) Configure(o universe.Options) {
	t.mu.Lock()
	t.options = o
	t.status = universe.Status{}
	if t.field.Rows != o.Rows || t.field.Cols != o.Cols {
		t.field = universe.NewGrid(o.Rows, o.Cols)
	}
	t.mu.Unlock()
	t.update(func(g *gocui.Gui) error {
		t.renderConfiguration(g)
		return nil
	})
}

//Refresh copies the generation and schedules the redraw
func (t *ConsoleUI) Refresh(st universe.Status, g universe.Grid) {
	t.mu.Lock()
	t.status = st
	if t.field.Rows != g.Rows || t.field.Cols != g.Cols {
		t.field = universe.NewGrid(g.Rows, g.Cols)
	}
	copy(t.field.Cells, g.Cells)
	t.mu.Unlock()

	t.update(func(g *gocui.Gui) error {
		t.renderStatus(g)
		return t.renderField(g)
	})
}

func (t *ConsoleUI) renderField(g *gocui.Gui) error {
	v, e := g.View("life")
	if e != nil {
		//the terminal is too small, nothing to draw
		return nil
	}
	//the entire field is redrawing at once
	v.Clear()
	maxW, maxH := v.Size()
	t.mu.Lock()
	s := fieldText(t.field, maxW, maxH, t.liveFiller, t.deadFiller)
	t.mu.Unlock()
	_, _ = fmt.Fprint(v, s)
	return nil
}

//fieldText draws the grid cropped to the maxW x maxH view
func fieldText(a universe.Grid, maxW int, maxH int, live string, dead string) string {
	crop := a.Cols > maxW || a.Rows > maxH
	var b bytes.Buffer
	for i := 0; i < a.Rows; i++ {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, e := range a.Row(i) {
			if j >= maxW {
				break
			}
			if e {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	t.mu.Lock()
	s := t.status
	t.mu.Unlock()
	if v, e := g.View("status"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", s.Generation))
		_, _ = fmt.Fprintln(v, renderProp("Live Cells", "%v", s.LiveCells))
		_, _ = fmt.Fprintln(v, renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
		_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	t.mu.Lock()
	c := t.options
	t.mu.Unlock()
	if v, e := g.View("configuration"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", c.Rows, c.Cols))
		_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.Interval))
		_, _ = fmt.Fprintln(v, renderProp("Generations", "%v max", c.MaxGenerations))
	}
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("life")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "\"The Life\" seeded from the image"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(g)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(g)
	}

	if v, err := g.SetView("life", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Life"
		v.Frame = true
	}
	if err := t.renderField(g); err != nil {
		return err
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, helpText(t.k))
	}

	return nil
}

func helpText(k []keyBindings) string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			text = text[:max(0, maxX)]
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

//cmdRunAgain asks for the new run, ignored while the simulation is still running
func (t *ConsoleUI) cmdRunAgain(_ *gocui.View) error {
	t.mu.Lock()
	finished := t.status.RunningMode.Finished()
	t.mu.Unlock()
	if !finished {
		return nil
	}
	select {
	case t.restartCh <- struct{}{}:
	default:
	}
	return nil
}
