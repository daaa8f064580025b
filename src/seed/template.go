package seed

import (
	"sort"

	"github.com/pkg/errors"

	"imagelife/src/universe"
)

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [row,col] coordinates
}

var templates = map[string]Template{}

func init() {
	for _, t := range []Template{
		{"blinker", "period 2 oscillator", [][]int{{0, 0}, {0, 1}, {0, 2}}},
		{"block", "2x2 still life", [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{"glider", "moves diagonally until it hits the border", [][]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
		{"single", "one cell, dies in the first step", [][]int{{0, 0}}},
		{"testSample", "the test sample with 3 stable patterns", [][]int{
			{1, 1}, {2, 1},
			{1, 2}, {2, 2},
			{3, 3},
			{2, 4},
			{3, 4},
			{3, 5},
		}},
	} {
		AddTemplate(t)
	}
}

//AddTemplate adds the seeding template to the registry, the template with the same name is replaced
func AddTemplate(tmpl Template) {
	templates[tmpl.Name] = tmpl
}

//LookupTemplate returns the registered template
func LookupTemplate(name string) (Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Template{}, errors.Errorf("[LookupTemplate] unknown template %q", name)
	}
	return tmpl, nil
}

//TemplateNames returns the sorted names of all registered templates
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Seed settles the template in the middle of the new grid
//coordinates which do not fit the grid are skipped
func (t Template) Seed(rows int, cols int) (universe.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return universe.Grid{}, errors.Errorf("[Template] invalid dimension %v x %v", rows, cols)
	}
	g := universe.NewGrid(rows, cols)
	h, w := t.size()
	offRow := max(0, (rows-h)/2)
	offCol := max(0, (cols-w)/2)
	for _, v := range t.Coordinates {
		g.Set(v[0]+offRow, v[1]+offCol, universe.Alive)
	}
	return g, nil
}

//Place settles the template at the given position without centering
func (t Template) Place(g universe.Grid, row int, col int) {
	for _, v := range t.Coordinates {
		g.Set(v[0]+row, v[1]+col, universe.Alive)
	}
}

//size returns the bounding box of the coordinates counted from 0,0
func (t Template) size() (h int, w int) {
	for _, v := range t.Coordinates {
		h = max(h, v[0]+1)
		w = max(w, v[1]+1)
	}
	return
}
