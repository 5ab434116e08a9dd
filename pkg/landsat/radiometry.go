package landsat

import(
	"fmt"
	"log"
	"math"

	"github.com/awhall/gorast/pkg/grid"
	"github.com/awhall/gorast/pkg/mtl"
)

// GainBias converts a Lmax/Lmin/QCALmax/QCALmin calibration quadruple
// into the equivalent multiplicative gain and additive bias.
func GainBias(lmax, lmin, qcalmax, qcalmin float64) (gain, bias float64) {
	gain = (lmax - lmin) / (qcalmax - qcalmin)
	bias = lmin - gain*qcalmin
	return
}

// DNToRadiance converts digital numbers to at-sensor spectral radiance,
// elementwise dn*gain + bias.
func DNToRadiance(dn *grid.Grid, gain, bias float64) *grid.Grid {
	return dn.Scale(gain, bias)
}

// RadianceToKelvin converts thermal-band radiance to brightness
// temperature via the inverse Planck-type formula k2 / ln(k1/L + 1).
func RadianceToKelvin(rad *grid.Grid, k1, k2 float64) *grid.Grid {
	return rad.Apply(func(l float64) float64 {
		return k2 / math.Log(k1/l+1)
	})
}

// NormDiff is the normalized difference (a-b)/(a+b), elementwise.
func NormDiff(a, b *grid.Grid) (*grid.Grid, error) {
	return grid.NormDiff(a, b)
}

// radianceGainBias pulls the per-band radiance calibration out of the
// scene metadata. Landsat 8 records gain and bias directly; the earlier
// spacecraft record min/max radiance against the quantization range,
// with key names that changed between the metadata format generations.
func radianceGainBias(meta *mtl.Group, spacecraft string, newFormat bool, label string) (gain, bias float64, err error) {
	if meta == nil {
		return 0, 0, MissingMetadataError{What: "radiance calibration for band " + label}
	}

	if spacecraft == "L8" {
		rr, err := meta.Group("RADIOMETRIC_RESCALING")
		if err != nil {
			return 0, 0, err
		}
		gain, err = rr.Float(fmt.Sprintf("RADIANCE_MULT_BAND_%s", label))
		if err != nil {
			return 0, 0, err
		}
		bias, err = rr.Float(fmt.Sprintf("RADIANCE_ADD_BAND_%s", label))
		return gain, bias, err
	}

	tok := bandToken(label, newFormat)
	var lmaxKey, lminKey, qmaxKey, qminKey string
	if newFormat {
		lmaxKey = fmt.Sprintf("RADIANCE_MAXIMUM_BAND_%s", tok)
		lminKey = fmt.Sprintf("RADIANCE_MINIMUM_BAND_%s", tok)
		qmaxKey = fmt.Sprintf("QUANTIZE_CAL_MAX_BAND_%s", tok)
		qminKey = fmt.Sprintf("QUANTIZE_CAL_MIN_BAND_%s", tok)
	} else {
		lmaxKey = fmt.Sprintf("LMAX_BAND%s", tok)
		lminKey = fmt.Sprintf("LMIN_BAND%s", tok)
		qmaxKey = fmt.Sprintf("QCALMAX_BAND%s", tok)
		qminKey = fmt.Sprintf("QCALMIN_BAND%s", tok)
	}

	mmr, err := meta.Group("MIN_MAX_RADIANCE")
	if err != nil {
		return 0, 0, err
	}
	mmp, err := meta.Group("MIN_MAX_PIXEL_VALUE")
	if err != nil {
		return 0, 0, err
	}
	lmax, err := mmr.Float(lmaxKey)
	if err != nil {
		return 0, 0, err
	}
	lmin, err := mmr.Float(lminKey)
	if err != nil {
		return 0, 0, err
	}
	qcalmax, err := mmp.Float(qmaxKey)
	if err != nil {
		return 0, 0, err
	}
	qcalmin, err := mmp.Float(qminKey)
	if err != nil {
		return 0, 0, err
	}
	gain, bias = GainBias(lmax, lmin, qcalmax, qcalmin)
	return gain, bias, nil
}

// Radiance converts a band's digital numbers to at-sensor radiance
// using the scene's calibration metadata.
func Radiance(dn *grid.Grid, meta *mtl.Group, spacecraft string, newFormat bool, label string) (*grid.Grid, error) {
	gain, bias, err := radianceGainBias(meta, spacecraft, newFormat, label)
	if err != nil {
		return nil, err
	}
	return DNToRadiance(dn, gain, bias), nil
}

// sunElevationDeg reads the scene's sun elevation, which moved between
// metadata groups across the format change.
func sunElevationDeg(meta *mtl.Group, newFormat bool) (float64, error) {
	groupName := "IMAGE_ATTRIBUTES"
	if !newFormat {
		groupName = "PRODUCT_PARAMETERS"
	}
	g, err := meta.Group(groupName)
	if err != nil {
		return 0, err
	}
	return g.Float("SUN_ELEVATION")
}

// acquisitionDayOfYear reads the acquisition date (whose key also
// changed with the format generation) and returns the day of year.
func acquisitionDayOfYear(meta *mtl.Group, newFormat bool) (int, error) {
	pm, err := meta.Group("PRODUCT_METADATA")
	if err != nil {
		return 0, err
	}
	key := "DATE_ACQUIRED"
	if !newFormat {
		key = "ACQUISITION_DATE"
	}
	d, err := pm.Date(key)
	if err != nil {
		return 0, err
	}
	return d.YearDay(), nil
}

// Reflectance converts a band's digital numbers to top-of-atmosphere
// reflectance. Landsat 8 metadata carries direct reflectance rescaling
// coefficients which only need the solar geometry correction; Landsat
// 5/7 go through radiance, the earth-sun distance for the acquisition
// day, and the band's solar irradiance. Other spacecraft are not
// supported and yield an absent result.
func Reflectance(dn *grid.Grid, meta *mtl.Group, spacecraft string, newFormat bool, label string) (*grid.Grid, error) {
	if meta == nil {
		return nil, MissingMetadataError{What: "reflectance calibration for band " + label}
	}

	switch {
	case spacecraft == "L8":
		rr, err := meta.Group("RADIOMETRIC_RESCALING")
		if err != nil {
			return nil, err
		}
		gain, err := rr.Float(fmt.Sprintf("REFLECTANCE_MULT_BAND_%s", label))
		if err != nil {
			return nil, err
		}
		bias, err := rr.Float(fmt.Sprintf("REFLECTANCE_ADD_BAND_%s", label))
		if err != nil {
			return nil, err
		}
		sedeg, err := sunElevationDeg(meta, true)
		if err != nil {
			return nil, err
		}
		raw := DNToRadiance(dn, gain, bias)
		return raw.Scale(1/math.Sin(sedeg*math.Pi/180), 0), nil

	case spacecraft == "L5" || spacecraft == "L7":
		scale, err := reflectanceScale(meta, spacecraft, newFormat, label)
		if err != nil {
			return nil, err
		}
		rad, err := Radiance(dn, meta, spacecraft, newFormat, label)
		if err != nil {
			return nil, err
		}
		return rad.Scale(scale, 0), nil
	}

	log.Printf("reflectance not implemented for spacecraft %s", spacecraft)
	return nil, nil
}

// reflectanceScale is the pi*d^2 / (ESUN*sin(elev)) factor that turns
// Landsat 5/7 at-sensor radiance into top-of-atmosphere reflectance.
func reflectanceScale(meta *mtl.Group, spacecraft string, newFormat bool, label string) (float64, error) {
	sedeg, err := sunElevationDeg(meta, newFormat)
	if err != nil {
		return 0, err
	}
	doy, err := acquisitionDayOfYear(meta, newFormat)
	if err != nil {
		return 0, err
	}
	es, ok := ESun(spacecraft, label)
	if !ok {
		return 0, fmt.Errorf("no solar irradiance for spacecraft %s band %s", spacecraft, label)
	}
	d := EarthSunDistance(doy)
	return (math.Pi * d * d) / (es * math.Sin(sedeg*math.Pi/180)), nil
}

// thermalBand reports whether a band label designates a thermal channel
// of the spacecraft.
func thermalBand(spacecraft, label string) bool {
	if spacecraft == "L8" {
		return label == "10" || label == "11"
	}
	return len(label) > 0 && label[0] == '6'
}

// thermalConstants returns the K1/K2 pair for a thermal band: from the
// scene metadata for Landsat 8, from the fixed per-sensor table for the
// earlier spacecraft.
func thermalConstants(meta *mtl.Group, spacecraft, label string) (k1, k2 float64, err error) {
	if spacecraft == "L8" {
		tc, err := meta.Group("TIRS_THERMAL_CONSTANTS")
		if err != nil {
			return 0, 0, err
		}
		k1, err = tc.Float(fmt.Sprintf("K1_CONSTANT_BAND_%s", label))
		if err != nil {
			return 0, 0, err
		}
		k2, err = tc.Float(fmt.Sprintf("K2_CONSTANT_BAND_%s", label))
		return k1, k2, err
	}
	k1, k2, ok := KConstants(spacecraft)
	if !ok {
		return 0, 0, fmt.Errorf("no thermal constants for spacecraft %s", spacecraft)
	}
	return k1, k2, nil
}

// BrightnessTemp converts a thermal band's digital numbers to
// brightness temperature in Kelvin. Non-thermal bands yield an absent
// result with a logged warning, not an error.
func BrightnessTemp(dn *grid.Grid, meta *mtl.Group, spacecraft string, newFormat bool, label string) (*grid.Grid, error) {
	if meta == nil {
		return nil, MissingMetadataError{What: "thermal calibration for band " + label}
	}
	if !thermalBand(spacecraft, label) {
		log.Printf("no automatic brightness temperature for spacecraft %s band %s", spacecraft, label)
		return nil, nil
	}
	k1, k2, err := thermalConstants(meta, spacecraft, label)
	if err != nil {
		return nil, err
	}
	rad, err := Radiance(dn, meta, spacecraft, newFormat, label)
	if err != nil {
		return nil, err
	}
	return RadianceToKelvin(rad, k1, k2), nil
}
