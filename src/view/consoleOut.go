package view

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"imagelife/src/universe"
)

const (
	liveGlyph = "@ "
	deadGlyph = ". "
	lineEnd   = "\n\r"

	clearSeq  = "\x1b[H\x1b[2J"
	resizeSeq = "\x1b[8;%d;%dt"

	minConsoleCols = 32
)

//ErrUnsupportedOS is returned when the console can not be controlled on this operating system
var ErrUnsupportedOS = errors.New("your operating system is not supported")

//ConsoleOut draws every generation as the text frame
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	goos      string
	startTime time.Time
	b         bytes.Buffer
}

//NewConsoleOut creates the console viewer writing to w
func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), goos: runtime.GOOS}
}

//Configure prints the running configuration and remembers the start time
func (c *ConsoleOut) Configure(o universe.Options) {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Rows, o.Cols)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max generations: %v\n", o.MaxGenerations)
}

//Refresh clears the console and draws the generation
//the frame is written at once to reduce the flickering
func (c *ConsoleOut) Refresh(st universe.Status, g universe.Grid) {
	c.b.Reset()
	if c.goos == "windows" {
		_ = c.clearWindows()
	} else {
		c.b.WriteString(clearSeq)
	}
	c.writeFrame(st, g)
	_, _ = c.w.Write(c.b.Bytes())

	if st.RunningMode.Finished() {
		c.printSummary(st)
	}
}

func (c *ConsoleOut) writeFrame(st universe.Status, g universe.Grid) {
	c.b.WriteString(fmt.Sprintf("%s - To exit the program press <Ctrl-C>", c.au.Cyan(fmt.Sprintf("Generation %d", st.Generation))))
	c.b.WriteString(lineEnd)
	for r := 0; r < g.Rows; r++ {
		for _, e := range g.Row(r) {
			if e {
				c.b.WriteString(liveGlyph)
			} else {
				c.b.WriteString(deadGlyph)
			}
		}
		c.b.WriteString(lineEnd)
	}
}

func (c *ConsoleOut) printSummary(st universe.Status) {
	mode := c.au.Green(st.RunningMode.String())
	if st.RunningMode != universe.RunningStateConverged {
		mode = c.au.Red(st.RunningMode.String())
	}
	_, _ = fmt.Fprintln(c.w, "\nFinished:")
	_, _ = fmt.Fprintf(c.w, "  State: %v\n", mode)
	_, _ = fmt.Fprintf(c.w, "  Last generation: %v\n", st.Generation)
	_, _ = fmt.Fprintf(c.w, "  Live cells: %v\n", st.LiveCells)
	if !c.startTime.IsZero() {
		_, _ = fmt.Fprintf(c.w, "  Total time: %v\n", time.Since(c.startTime).Round(time.Millisecond))
	}
}

//Clear clears the console
func (c *ConsoleOut) Clear() error {
	switch c.goos {
	case "windows":
		return c.clearWindows()
	case "linux", "darwin":
		_, err := io.WriteString(c.w, clearSeq)
		return err
	}
	return errors.Wrapf(ErrUnsupportedOS, "[Clear] %v", c.goos)
}

//Resize resizes the console to fit the grid of rows x cols, every cell takes two chars
func (c *ConsoleOut) Resize(rows int, cols int) error {
	if cols < minConsoleCols {
		cols = minConsoleCols
	}
	switch c.goos {
	case "windows":
		cmd := exec.Command("cmd", "/c", fmt.Sprintf("mode con: cols=%d lines=%d", cols+cols, rows+5))
		cmd.Stdout = os.Stdout
		return errors.Wrap(cmd.Run(), "[Resize] mode con")
	case "linux", "darwin":
		_, err := fmt.Fprintf(c.w, resizeSeq, rows+3, cols+cols)
		return err
	}
	return errors.Wrapf(ErrUnsupportedOS, "[Resize] %v", c.goos)
}

func (c *ConsoleOut) clearWindows() error {
	cmd := exec.Command("cmd", "/c", "cls")
	cmd.Stdout = os.Stdout
	return errors.Wrap(cmd.Run(), "[Clear] cls")
}
