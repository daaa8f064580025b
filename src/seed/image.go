package seed

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imagelife/src/universe"
)

//DefThreshold is the brightest gray level still treated as a live cell
const DefThreshold = 127

//Image settles the grid from the picture file
//the picture is converted to grayscale, scaled to the grid dimension and thresholded,
//dark pixels become live cells
type Image struct {
	Path      string
	Threshold uint8
}

//NewImage creates the image supplier with the default threshold
func NewImage(path string) *Image {
	return &Image{Path: path, Threshold: DefThreshold}
}

func (s *Image) Seed(rows int, cols int) (universe.Grid, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return universe.Grid{}, errors.Wrapf(err, "[Image] failed to open file: %v", s.Path)
	}
	defer f.Close()

	g, err := Decode(f, rows, cols, s.Threshold)
	if err != nil {
		return universe.Grid{}, errors.Wrapf(err, "[Image] file: %v", s.Path)
	}
	return g, nil
}

//Decode reads the picture and converts it to the grid of rows x cols
func Decode(r io.Reader, rows int, cols int, threshold uint8) (universe.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return universe.Grid{}, errors.Errorf("[Decode] invalid dimension %v x %v", rows, cols)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return universe.Grid{}, errors.Wrap(err, "[Decode] failed to decode the image")
	}
	if img.Bounds().Empty() {
		return universe.Grid{}, errors.New("[Decode] empty image")
	}
	return Threshold(Grayscale(img, rows, cols), threshold), nil
}

//Grayscale scales the picture to cols x rows pixels and drops the colour
//the picture is laid over the white background, so the transparent pixels are bright
func Grayscale(img image.Image, rows int, cols int) *image.Gray {
	r := image.Rect(0, 0, cols, rows)
	canvas := image.NewRGBA(r)
	draw.Draw(canvas, r, image.White, image.Point{}, draw.Src)
	draw.BiLinear.Scale(canvas, r, img, img.Bounds(), draw.Over, nil)

	gray := image.NewGray(r)
	draw.Draw(gray, r, canvas, image.Point{}, draw.Src)
	return gray
}

//Threshold converts the gray picture to the grid, pixels not brighter than threshold are alive
func Threshold(gray *image.Gray, threshold uint8) universe.Grid {
	b := gray.Bounds()
	g := universe.NewGrid(b.Dy(), b.Dx())
	for row := 0; row < g.Rows; row++ {
		line := g.Row(row)
		for col := range line {
			line[col] = gray.GrayAt(b.Min.X+col, b.Min.Y+row).Y <= threshold
		}
	}
	return g
}
