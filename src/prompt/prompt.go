//Package prompt asks the user for the simulation parameters
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

//Prompter reads the answers line by line
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

//String prints the label and returns the answer without surrounding spaces
func (p *Prompter) String(label string) (string, error) {
	_, _ = fmt.Fprint(p.w, label)
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrapf(err, "[Prompter] no answer for %q", strings.TrimSpace(label))
	}
	return strings.TrimSpace(line), nil
}

//Int asks until the answer is an integer between low and high inclusive
func (p *Prompter) Int(label string, low int, high int) (int, error) {
	for {
		s, err := p.String(label)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(s)
		if err != nil {
			_, _ = fmt.Fprintln(p.w, "Input was not a valid integer value.")
			continue
		}
		if value < low || value > high {
			_, _ = fmt.Fprintf(p.w, "Input was not inside the bounds (%v <= value <= %v).\n", low, high)
			continue
		}
		return value, nil
	}
}

//RunAgain asks whether to run the simulation once more, only "r" means yes
func (p *Prompter) RunAgain() (bool, error) {
	s, err := p.String("<Enter> to exit or r to run again: ")
	if err != nil {
		return false, err
	}
	return s == "r", nil
}
