package landsat

import(
	"fmt"
	"math"

	"github.com/awhall/gorast/pkg/grid"
)

// DefaultCloudTempK is the naive cloud-top temperature cutoff.
const DefaultCloudTempK = 280.0

// NaiveThermal classifies a thermal band by brightness temperature:
// 1.0 where the pixel is colder than thresholdK (cloud), 0.0 elsewhere.
func NaiveThermal(b *Band, thresholdK float64) (*grid.Grid, error) {
	tk, err := b.TKelvin()
	if err != nil {
		return nil, err
	}
	if tk == nil {
		return nil, fmt.Errorf("band %s has no brightness temperature, cannot threshold it", b.Label)
	}
	return tk.Apply(func(t float64) float64 {
		if t < thresholdK {
			return 1.0
		}
		return 0.0
	}), nil
}

// LTK classification codes.
const (
	LTKBareLand  = 1.0
	LTKIceSnow   = 2.0
	LTKWater     = 3.0
	LTKCloud     = 4.0
	LTKAmbiguous = 5.0
)

// LTK classifies each pixel with the Luo-Trishchenko-Khlopenkov
// decision tree (per Oreopoulos et al. 2011) over top-of-atmosphere
// reflectances of the blue (r1), red (r3), NIR (r4) and SWIR1 (r5)
// channels.
func LTK(r1, r3, r4, r5 *grid.Grid) (*grid.Grid, error) {
	for _, g := range []*grid.Grid{r3, r4, r5} {
		if !r1.SameShape(g) {
			return nil, fmt.Errorf("LTK needs same-shape reflectance grids")
		}
	}

	out := r1.NewFromThis()
	for y := 0; y < r1.Dy(); y++ {
		for x := 0; x < r1.Dx(); x++ {
			out.Set(x, y, ltkClass(r1.Get(x, y), r3.Get(x, y), r4.Get(x, y), r5.Get(x, y)))
		}
	}
	return out, nil
}

func ltkClass(b1, b3, b4, b5 float64) float64 {
	switch {
	case (b1 < b3 && b3 < b4 && b4 < b5*1.07 && b5 < 0.65) ||
		(b1*0.8 < b3 && b3 < b4*0.8 && b4 < b5 && b3 < 0.22):
		return LTKBareLand
	case (b3 > 0.24 && b5 < 0.16 && b3 > b4) ||
		(b3 > 0.18 && b3 <= 0.24 && b5 < b3-0.08 && b3 > b4):
		return LTKIceSnow
	case (b3 > b4 && b3 > b5*0.67 && b1 < 0.30 && b3 < 0.20) ||
		(b3 > b4*0.8 && b3 > b5*0.67 && b3 < 0.06):
		return LTKWater
	case (b1 > 0.20 || b3 > 0.18) && b5 > 0.16 && math.Max(b1, b3) > b5*0.67:
		return LTKCloud
	}
	return LTKAmbiguous
}
