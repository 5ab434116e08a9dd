package grid

import "fmt"

// A Cube is an ordered band-major stack of same-shape grids: band data
// for a multi-band raster, or a single band wrapped for writing.
type Cube struct {
	bands []*Grid
}

func NewCube(bands ...*Grid) (*Cube, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("cube needs at least one band")
	}
	for i, b := range bands[1:] {
		if !b.SameShape(bands[0]) {
			return nil, fmt.Errorf("cube band %d is %dx%d, band 0 is %dx%d",
				i+1, b.Dx(), b.Dy(), bands[0].Dx(), bands[0].Dy())
		}
	}
	return &Cube{bands: bands}, nil
}

func (c *Cube)NBands() int        { return len(c.bands) }
func (c *Cube)Band(i int) *Grid   { return c.bands[i] }
func (c *Cube)Dx() int            { return c.bands[0].Dx() }
func (c *Cube)Dy() int            { return c.bands[0].Dy() }
