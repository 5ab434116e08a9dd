package grid

import(
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// A Grid is a rectangular raster of float64 samples, row-major. It is
// the in-memory currency for band data and everything derived from it.
type Grid struct {
	stride int
	values []float64
}

func New(nx, ny int) *Grid {
	return &Grid{
		stride: nx,
		values: make([]float64, nx*ny),
	}
}

// FromSlice wraps an existing value slice. len(vals) must be nx*ny.
func FromSlice(nx, ny int, vals []float64) (*Grid, error) {
	if len(vals) != nx*ny {
		return nil, fmt.Errorf("grid %dx%d needs %d values, got %d", nx, ny, nx*ny, len(vals))
	}
	return &Grid{stride: nx, values: vals}, nil
}

func (g *Grid)NewFromThis() *Grid          { return New(g.Dx(), g.Dy()) }
func (g *Grid)Set(x, y int, v float64)     { g.values[g.stride*y + x] = v }
func (g *Grid)Get(x, y int) float64        { return g.values[g.stride*y + x] }
func (g *Grid)Dx() int                     { return g.stride }
func (g *Grid)Dy() int                     { return len(g.values) / g.stride }
func (g *Grid)Values() []float64           { return g.values }

func (g1 *Grid)Copy() *Grid {
	g2 := Grid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

func (g1 *Grid)SameShape(g2 *Grid) bool {
	return g1.Dx() == g2.Dx() && g1.Dy() == g2.Dy()
}

// Apply returns a new grid with f applied to every sample.
func (g1 *Grid)Apply(f func(float64) float64) *Grid {
	g2 := g1.NewFromThis()
	for i, v := range g1.values {
		g2.values[i] = f(v)
	}
	return g2
}

// Scale returns a new grid computed as v*gain + bias, elementwise.
func (g1 *Grid)Scale(gain, bias float64) *Grid {
	return g1.Apply(func(v float64) float64 { return v*gain + bias })
}

// NormDiff computes (a-b)/(a+b) elementwise. Zero-sum samples come out
// as NaN, which downstream stats ignore.
func NormDiff(a, b *Grid) (*Grid, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("normdiff needs same-shape grids, got %dx%d and %dx%d",
			a.Dx(), a.Dy(), b.Dx(), b.Dy())
	}
	out := a.NewFromThis()
	for i := range a.values {
		out.values[i] = (a.values[i] - b.values[i]) / (a.values[i] + b.values[i])
	}
	return out, nil
}

type Stats struct {
	Min, Max, Mean, Std float64
}

// Stats summarizes the finite samples of the grid.
func (g *Grid)Stats() Stats {
	s := Stats{Min: math.MaxFloat64, Max: -math.MaxFloat64}
	finite := make([]float64, 0, len(g.values))
	for _, v := range g.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
		if v < s.Min { s.Min = v }
		if v > s.Max { s.Max = v }
	}
	if len(finite) == 0 {
		return Stats{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), Std: math.NaN()}
	}
	s.Mean = stat.Mean(finite, nil)
	s.Std = math.Sqrt(stat.Variance(finite, nil))
	return s
}

// Quantile returns the p-quantile (0..1) over the finite samples.
func (g *Grid)Quantile(p float64) float64 {
	finite := make([]float64, 0, len(g.values))
	for _, v := range g.values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)
	return stat.Quantile(p, stat.Empirical, finite, nil)
}

func (s Stats)String() string {
	return fmt.Sprintf("min %g / max %g / mean %g / std %g", s.Min, s.Max, s.Mean, s.Std)
}
