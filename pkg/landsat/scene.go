package landsat

import(
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/awhall/gorast/pkg/grid"
	"github.com/awhall/gorast/pkg/mtl"
	"github.com/awhall/gorast/pkg/raster"
)

// A Scene is a directory holding all files of one Landsat acquisition:
// one raster file per band plus the MTL metadata file. TM/ETM+ (L4/5/7)
// and OLI/TIRS (L8) scenes are supported, in both the legacy and the
// post-2012 metadata format.
//
// Spacecraft and metadata format are fixed at construction; bands are
// resolved and opened on first access and cached.
type Scene struct {
	Dirname string

	// Infix is spliced into band file names just before the extension,
	// to address post-processed band variants. Empty by default.
	Infix string

	// Meta is the scene metadata, i.e. the L1_METADATA_FILE group.
	Meta *mtl.Group

	Spacecraft     string // normalized: L4, L5, L7, L8
	NewMetaFormat  bool
	MajorSWVersion int

	bands map[string]*Band
}

// detectMetaFormat decides the metadata format generation with a single
// presence check: the new format carries the processing software
// version in METADATA_FILE_INFO, the legacy one in PRODUCT_METADATA.
func detectMetaFormat(meta *mtl.Group) (newFormat bool, version string, err error) {
	if meta == nil {
		return false, "", MissingMetadataError{What: "scene metadata"}
	}
	if mfi, e := meta.Group("METADATA_FILE_INFO"); e == nil && mfi.Has("PROCESSING_SOFTWARE_VERSION") {
		v, e := mfi.Str("PROCESSING_SOFTWARE_VERSION")
		return true, v, e
	}
	if pm, e := meta.Group("PRODUCT_METADATA"); e == nil && pm.Has("PROCESSING_SOFTWARE") {
		v, e := pm.Str("PROCESSING_SOFTWARE")
		return false, v, e
	}
	return false, "", MissingMetadataError{What: "processing software version"}
}

// majorVersion extracts the major number from a processing software
// version string such as "LPGS_12.5.0".
func majorVersion(version string) (int, error) {
	v := version
	if i := strings.IndexByte(v, '_'); i >= 0 {
		v = v[i+1:]
	}
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("unparseable processing software version %q", version)
	}
	return n, nil
}

// NewScene opens the scene metadata in dirname and resolves the
// scene-level attributes. It fails fast if the top-level metadata is
// absent; individual bands are only touched on first access.
func NewScene(dirname string) (*Scene, error) {
	meta, err := mtl.ParseDir(dirname)
	if err != nil {
		return nil, err
	}
	return newScene(dirname, meta)
}

func newScene(dirname string, meta *mtl.Group) (*Scene, error) {
	pm, err := meta.Group("PRODUCT_METADATA")
	if err != nil {
		return nil, err
	}
	spid, err := pm.Str("SPACECRAFT_ID")
	if err != nil {
		return nil, err
	}
	spacecraft := NormalizeSpacecraftID(spid)
	if _, ok := Bands(spacecraft); !ok {
		return nil, fmt.Errorf("unrecognized spacecraft %q in %s", spid, dirname)
	}

	newFormat, version, err := detectMetaFormat(meta)
	if err != nil {
		return nil, err
	}
	major, err := majorVersion(version)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Dirname:        dirname,
		Meta:           meta,
		Spacecraft:     spacecraft,
		NewMetaFormat:  newFormat,
		MajorSWVersion: major,
		bands:          map[string]*Band{},
	}, nil
}

// canonicalLabel accepts "6H", "6h", "band6H", "BAND10" etc and returns
// the bare upper-case band label.
func canonicalLabel(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	return strings.TrimPrefix(s, "BAND")
}

// Band resolves a band by label, opening and caching it on first use.
func (s *Scene)Band(name string) (*Band, error) {
	label := canonicalLabel(name)
	if b, ok := s.bands[label]; ok {
		return b, nil
	}

	fn, err := resolveBandFile(s.Meta, s.Spacecraft, s.NewMetaFormat, label, s.Infix)
	if err != nil {
		return nil, err
	}
	r, err := raster.Open(filepath.Join(s.Dirname, fn))
	if err != nil {
		return nil, err
	}
	b := &Band{Raster: r, Label: label, Meta: s.Meta, scene: s}
	s.bands[label] = b
	return b, nil
}

// Close releases all bands opened so far.
func (s *Scene)Close() {
	for _, b := range s.bands {
		b.Raster.Close()
	}
	s.bands = map[string]*Band{}
}

// normDiffIndex reads the two named bands and computes their normalized
// difference, reporting which band failed if one does.
func (s *Scene)normDiffIndex(what, label1, label2 string) (*grid.Grid, error) {
	arrs := [2]*grid.Grid{}
	for i, label := range []string{label1, label2} {
		b, err := s.Band(label)
		if err == nil {
			arrs[i], err = b.Data()
		}
		if err != nil {
			log.Printf("error accessing bands %s and %s to calculate %s: band %s failed", label1, label2, what, label)
			return nil, fmt.Errorf("%s band %s: %w", what, label, err)
		}
	}
	return grid.NormDiff(arrs[0], arrs[1])
}

// NDVI is the normalized difference vegetation index, from the
// spacecraft's NIR/red band pair.
func (s *Scene)NDVI() (*grid.Grid, error) {
	p, ok := ndviBands[s.Spacecraft]
	if !ok {
		return nil, fmt.Errorf("no NDVI band pair for spacecraft %s", s.Spacecraft)
	}
	return s.normDiffIndex("NDVI", p[0], p[1])
}

// NBR is the normalized burn ratio, from the spacecraft's NIR/SWIR band
// pair.
func (s *Scene)NBR() (*grid.Grid, error) {
	p, ok := nbrBands[s.Spacecraft]
	if !ok {
		return nil, fmt.Errorf("no NBR band pair for spacecraft %s", s.Spacecraft)
	}
	return s.normDiffIndex("NBR", p[0], p[1])
}

// ThermalLabel is the thermal band used for cloud screening.
func (s *Scene)ThermalLabel() string {
	switch s.Spacecraft {
	case "L8":
		return "10"
	case "L7":
		return "6H"
	default:
		return "6"
	}
}

// NaiveCloud runs the brightness-temperature threshold classifier over
// the spacecraft's designated thermal band.
func (s *Scene)NaiveCloud(thresholdK float64) (*grid.Grid, error) {
	b, err := s.Band(s.ThermalLabel())
	if err != nil {
		return nil, err
	}
	return NaiveThermal(b, thresholdK)
}

// LTKCloud runs the Luo-Trishchenko-Khlopenkov classifier over the
// scene's reflectance bands.
func (s *Scene)LTKCloud() (*grid.Grid, error) {
	// blue, red, NIR, SWIR1 in the spacecraft's numbering
	labels := [4]string{"1", "3", "4", "5"}
	if s.Spacecraft == "L8" {
		labels = [4]string{"2", "4", "5", "6"}
	}
	refl := [4]*grid.Grid{}
	for i, label := range labels {
		b, err := s.Band(label)
		if err != nil {
			return nil, fmt.Errorf("LTK band %s: %w", label, err)
		}
		r, err := b.Reflectance()
		if err != nil {
			return nil, fmt.Errorf("LTK band %s reflectance: %w", label, err)
		}
		if r == nil {
			return nil, fmt.Errorf("LTK needs reflectance, unsupported for spacecraft %s", s.Spacecraft)
		}
		refl[i] = r
	}
	return LTK(refl[0], refl[1], refl[2], refl[3])
}
