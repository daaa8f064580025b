package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"imagelife/src/prompt"
	"imagelife/src/seed"
	"imagelife/src/universe"
	"imagelife/src/view"
)

//runViewer is the viewer which is told about the configuration of every new run
type runViewer interface {
	universe.Viewer
	Configure(o universe.Options)
}

//restartViewer is the viewer which asks for the new runs, see view.ConsoleUI
type restartViewer interface {
	runViewer
	RestartCh() <-chan struct{}
}

func main() {
	cfg, err := initOptions()
	if err != nil {
		log.Fatalln(err)
	}

	if cfg.Interactive {
		err = runInteractive(cfg)
	} else {
		err = runConsole(context.Background(), cfg, os.Stdin, os.Stdout)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func initOptions() (Config, error) {
	var (
		f          Config
		configPath string
	)
	flaggy.SetName("imagelife")
	flaggy.SetDescription("\"The Life\" game simulation seeded from the image")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&f.Rows, "y", "rows", fmt.Sprintf("Rows of a simulation field (%v-%v), asked when omitted", MinRows, MaxRows))
	flaggy.Int(&f.Cols, "x", "cols", fmt.Sprintf("Columns of a simulation field (%v-%v), asked when omitted", MinCols, MaxCols))
	flaggy.Duration(&f.Interval, "i", "interval", "Simulation speed (interval between the generations) in format the number with 'ms' suffix, for example 200ms")
	flaggy.Int(&f.MaxGenerations, "s", "maxGenerations", "Limit the simulation to maxGenerations")
	flaggy.String(&f.Image, "f", "image", "Picture to seed the field with (png, jpeg, gif, bmp, tiff, webp)")
	flaggy.String(&f.Template, "t", "template", "Template to seed the field with ["+strings.Join(seed.TemplateNames(), "|")+"]")
	flaggy.Bool(&f.Random, "r", "random", "Settle with random data")
	flaggy.Int(&f.Threshold, "", "threshold", "Brightest gray level (0-255) of the picture treated as a live cell")
	flaggy.Bool(&f.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&f.NoColor, "", "noColor", "Disable colors in the console output")
	flaggy.String(&configPath, "c", "config", "JSON configuration file, flags override its values")

	flaggy.Parse()

	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return cfg, err
		}
	}
	cfg = cfg.Override(f)
	return cfg, cfg.Validate()
}

//supplier picks the grid source: the image, the template or the random data
//nil supplier is returned when the source has to be asked
func supplier(cfg Config) (seed.Supplier, error) {
	switch {
	case cfg.Image != "":
		return &seed.Image{Path: cfg.Image, Threshold: uint8(cfg.Threshold)}, nil
	case cfg.Template != "":
		tmpl, err := seed.LookupTemplate(cfg.Template)
		if err != nil {
			return nil, errors.Wrap(err, "[supplier]")
		}
		return tmpl, nil
	case cfg.Random:
		return seed.NewRandom(), nil
	}
	return nil, nil
}

//simulate seeds the new universe and runs it to the end
func simulate(ctx context.Context, cfg Config, g universe.Grid, v runViewer) (universe.Status, error) {
	o := cfg.UniverseOptions(g.Rows, g.Cols)
	u, err := universe.NewUniverse(&o, g)
	if err != nil {
		return universe.Status{}, err
	}
	v.Configure(u.Options())
	u.RegisterViewer(v)
	return u.Run(ctx)
}

//runConsole is the classic mode: ask, run, ask to run again
//every run builds the new universe, nothing is kept between the runs
func runConsole(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	p := prompt.NewPrompter(in, out)
	c := view.NewConsoleOut(out, !cfg.NoColor)

	for {
		if err := c.Clear(); err != nil {
			_, _ = fmt.Fprintf(out, "Unable to clear terminal. %v\n\r", err)
		}
		rows, cols := cfg.Rows, cfg.Cols
		var err error
		if rows == 0 {
			if rows, err = p.Int(fmt.Sprintf("Enter the number of rows (%v-%v): ", MinRows, MaxRows), MinRows, MaxRows); err != nil {
				return err
			}
		}
		if cols == 0 {
			if cols, err = p.Int(fmt.Sprintf("Enter the number of cols (%v-%v): ", MinCols, MaxCols), MinCols, MaxCols); err != nil {
				return err
			}
		}
		s, err := supplier(cfg)
		if err != nil {
			return err
		}
		if s == nil {
			name, err := p.String("Enter the name of the image (empty for random data): ")
			if err != nil {
				return err
			}
			if name == "" {
				s = seed.NewRandom()
			} else {
				s = &seed.Image{Path: name, Threshold: uint8(cfg.Threshold)}
			}
		}

		g, err := s.Seed(rows, cols)
		if err != nil {
			return err
		}
		if err := c.Resize(rows, cols); err != nil {
			_, _ = fmt.Fprintf(out, "Unable to resize terminal. %v\n\r", err)
		}

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		_, err = simulate(runCtx, cfg, g, c)
		interrupted := runCtx.Err() != nil
		stop()
		if interrupted {
			return nil
		}
		if err != nil {
			return err
		}

		again, err := p.RunAgain()
		if err != nil || !again {
			return err
		}
	}
}

//runInteractive runs the gocui UI and the simulation runner side by side
//quitting the UI cancels the running simulation
func runInteractive(cfg Config) error {
	rows, cols := cfg.Rows, cfg.Cols
	if rows == 0 {
		rows = universe.DefRows
	}
	if cols == 0 {
		cols = universe.DefCols
	}
	s, err := supplier(cfg)
	if err != nil {
		return err
	}
	if s == nil {
		s = seed.NewRandom()
	}
	//the first grid is seeded before the UI takes the terminal, so the errors are visible
	g, err := s.Seed(rows, cols)
	if err != nil {
		return err
	}

	ui, err := view.NewConsoleUI()
	if err != nil {
		return err
	}

	//runErr is reported after the UI is closed, the UI itself ends with ErrQuit then
	var runErr error
	eg, ctx := errgroup.WithContext(context.Background())
	eg.Go(ui.Start)
	eg.Go(func() error {
		if err := runSimulations(ctx, cfg, s, g, ui); err != nil {
			runErr = err
			ui.Stop()
		}
		return nil
	})

	err = eg.Wait()
	if runErr != nil {
		return runErr
	}
	if errors.Cause(err) == view.ErrQuit {
		return nil
	}
	return err
}

//runSimulations runs g, then the newly seeded grid of the same size on every restart request
//nil is returned when ctx is done, the error of the run or of the seeding otherwise
func runSimulations(ctx context.Context, cfg Config, s seed.Supplier, g universe.Grid, v restartViewer) error {
	for {
		if _, err := simulate(ctx, cfg, g, v); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-v.RestartCh():
		}
		next, err := s.Seed(g.Rows, g.Cols)
		if err != nil {
			return err
		}
		g = next
	}
}
