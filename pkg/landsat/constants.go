package landsat

import(
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Permissible band labels per spacecraft. Landsat 7 splits thermal band
// 6 into a low-gain (6L) and a high-gain (6H) channel.
var permissibleBands = map[string][]string{
	"L4": {"1", "2", "3", "4", "5", "6", "7"},
	"L5": {"1", "2", "3", "4", "5", "6", "7"},
	"L7": {"1", "2", "3", "4", "5", "6L", "6H", "7", "8"},
	"L8": {"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
}

// Bands returns the permissible band labels for a spacecraft.
func Bands(spacecraft string) ([]string, bool) {
	b, ok := permissibleBands[spacecraft]
	return b, ok
}

// Band pairs for the normalized-difference indices, per spacecraft.
var (
	ndviBands = map[string][2]string{
		"L4": {"4", "3"},
		"L5": {"4", "3"},
		"L7": {"4", "3"},
		"L8": {"5", "4"},
	}
	nbrBands = map[string][2]string{
		"L4": {"4", "7"},
		"L5": {"4", "7"},
		"L7": {"4", "7"},
		"L8": {"5", "7"},
	}
)

// Exo-atmospheric solar irradiance in W/(m2 um), from Chander, Markham
// & Helder (2009), table 3. Thermal bands have no solar irradiance.
var esun = map[string]map[string]float64{
	"L4": {
		"1": 1983.0, "2": 1795.0, "3": 1539.0, "4": 1028.0,
		"5": 219.8, "7": 83.49,
	},
	"L5": {
		"1": 1983.0, "2": 1796.0, "3": 1536.0, "4": 1031.0,
		"5": 220.0, "7": 83.44,
	},
	"L7": {
		"1": 1997.0, "2": 1812.0, "3": 1533.0, "4": 1039.0,
		"5": 230.8, "7": 84.90, "8": 1362.0,
	},
}

// ESun looks up the exo-atmospheric solar irradiance for a spacecraft
// and band.
func ESun(spacecraft, band string) (float64, bool) {
	bands, ok := esun[spacecraft]
	if !ok {
		return 0, false
	}
	e, ok := bands[band]
	return e, ok
}

// Thermal calibration constants K1 (W/(m2 sr um)) and K2 (K) for the
// band-6 family of the pre-OLI sensors, from the USGS calibration
// handbooks. Landsat 8 carries its constants in the scene metadata
// instead.
var kConstants = map[string][2]float64{
	"L4": {671.62, 1284.30},
	"L5": {607.76, 1260.56},
	"L7": {666.09, 1282.71},
}

// KConstants returns (K1, K2) for a pre-L8 spacecraft.
func KConstants(spacecraft string) (k1, k2 float64, ok bool) {
	k, found := kConstants[spacecraft]
	if !found {
		return 0, 0, false
	}
	return k[0], k[1], true
}

// Earth-sun distance in astronomical units by day of year, from the
// Landsat 7 science data users handbook.
var earthSunTable = map[int]float64{
	1: 0.98331, 15: 0.98365, 32: 0.98536, 46: 0.98774, 60: 0.99084,
	74: 0.99446, 91: 0.99926, 106: 1.00353, 121: 1.00756, 135: 1.01087,
	152: 1.01403, 166: 1.01577, 182: 1.01667, 196: 1.01646, 213: 1.01497,
	227: 1.01281, 242: 1.00969, 258: 1.00566, 274: 1.00119, 288: 0.99718,
	305: 0.99253, 319: 0.98916, 335: 0.98608, 349: 0.98426, 365: 0.98333,
}

var earthSunInterp interp.PiecewiseLinear

func init() {
	doys := make([]int, 0, len(earthSunTable))
	for d := range earthSunTable {
		doys = append(doys, d)
	}
	sort.Ints(doys)

	xs := make([]float64, len(doys))
	ys := make([]float64, len(doys))
	for i, d := range doys {
		xs[i] = float64(d)
		ys[i] = earthSunTable[d]
	}
	if err := earthSunInterp.Fit(xs, ys); err != nil {
		panic(err) // table is static, Fit only fails on malformed input
	}
}

// EarthSunDistance interpolates the earth-sun distance in AU for a day
// of year (1-366).
func EarthSunDistance(dayOfYear int) float64 {
	d := float64(dayOfYear)
	if d < 1 {
		d = 1
	}
	if d > 365 {
		d = 365
	}
	return earthSunInterp.Predict(d)
}
