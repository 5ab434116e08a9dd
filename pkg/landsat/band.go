package landsat

import(
	"log"
	"path/filepath"

	"github.com/awhall/gorast/pkg/grid"
	"github.com/awhall/gorast/pkg/mtl"
	"github.com/awhall/gorast/pkg/raster"
)

// A Band is one spectral band of a Landsat scene: a single-band raster
// file plus the calibration metadata needed to derive radiance,
// reflectance and brightness temperature from it. A band normally
// belongs to a Scene and shares its metadata; a standalone band looks
// for an MTL file next to the band file, and can have Meta set
// explicitly instead.
type Band struct {
	*raster.Raster
	Label string

	// Meta is the scene-level metadata (the L1_METADATA_FILE group).
	// Owned by the scene when the band came from one.
	Meta *mtl.Group

	scene *Scene

	data        *grid.Grid // raw digital numbers, read once
	gain, bias  float64
	hasGainBias bool
}

// OpenBand opens a band file on its own, without a scene. If meta is
// nil, the band file's directory is searched for an MTL file; failing
// that, radiometric conversions will return MissingMetadataError until
// Meta is set.
func OpenBand(path, label string, meta *mtl.Group) (*Band, error) {
	if meta == nil {
		m, err := mtl.ParseDir(filepath.Dir(path))
		if err != nil {
			log.Printf("no metadata found for band file %s, set Meta explicitly for calibrated products: %v",
				path, err)
		} else {
			meta = m
		}
	}
	r, err := raster.Open(path)
	if err != nil {
		return nil, err
	}
	return &Band{Raster: r, Label: label, Meta: meta}, nil
}

// Spacecraft is the owning scene's spacecraft, or the one named in the
// band's own metadata.
func (b *Band)Spacecraft() string {
	if b.scene != nil {
		return b.scene.Spacecraft
	}
	if b.Meta != nil {
		if pm, err := b.Meta.Group("PRODUCT_METADATA"); err == nil {
			if spid, err := pm.Str("SPACECRAFT_ID"); err == nil {
				return NormalizeSpacecraftID(spid)
			}
		}
	}
	log.Printf("spacecraft not known for band %s, expected L4, L5, L7 or L8", b.Label)
	return ""
}

// NewMetaFormat reports which metadata format generation applies.
func (b *Band)NewMetaFormat() bool {
	if b.scene != nil {
		return b.scene.NewMetaFormat
	}
	newFormat, _, err := detectMetaFormat(b.Meta)
	if err != nil {
		log.Printf("metadata format not known for band %s: %v", b.Label, err)
	}
	return newFormat
}

// Data returns the band's raw digital numbers, read on first use.
func (b *Band)Data() (*grid.Grid, error) {
	if b.data == nil {
		g, err := b.Grid()
		if err != nil {
			return nil, err
		}
		b.data = g
	}
	return b.data, nil
}

// GainBias returns the band's radiance gain and bias, computing and
// caching them on first use.
func (b *Band)GainBias() (gain, bias float64, err error) {
	if !b.hasGainBias {
		b.gain, b.bias, err = radianceGainBias(b.Meta, b.Spacecraft(), b.NewMetaFormat(), b.Label)
		if err != nil {
			return 0, 0, err
		}
		b.hasGainBias = true
	}
	return b.gain, b.bias, nil
}

// Radiance is the band's at-sensor spectral radiance.
func (b *Band)Radiance() (*grid.Grid, error) {
	gain, bias, err := b.GainBias()
	if err != nil {
		return nil, err
	}
	dn, err := b.Data()
	if err != nil {
		return nil, err
	}
	return DNToRadiance(dn, gain, bias), nil
}

// Reflectance is the band's top-of-atmosphere reflectance. Absent (nil
// grid, nil error) for spacecraft without a supported formula.
func (b *Band)Reflectance() (*grid.Grid, error) {
	sc := b.Spacecraft()
	if sc == "L5" || sc == "L7" {
		scale, err := reflectanceScale(b.Meta, sc, b.NewMetaFormat(), b.Label)
		if err != nil {
			return nil, err
		}
		rad, err := b.Radiance()
		if err != nil {
			return nil, err
		}
		return rad.Scale(scale, 0), nil
	}
	dn, err := b.Data()
	if err != nil {
		return nil, err
	}
	return Reflectance(dn, b.Meta, sc, b.NewMetaFormat(), b.Label)
}

// TKelvin is the band's brightness temperature. Absent for non-thermal
// bands.
func (b *Band)TKelvin() (*grid.Grid, error) {
	dn, err := b.Data()
	if err != nil {
		return nil, err
	}
	return BrightnessTemp(dn, b.Meta, b.Spacecraft(), b.NewMetaFormat(), b.Label)
}
