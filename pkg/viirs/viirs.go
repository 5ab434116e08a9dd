// Package viirs gives band-level access to VIIRS SDR products stored as
// HDF5: mapping short band labels (I4, M13, DNB, GEO) onto the product
// group names under All_Data, reading band datasets, and locating the
// companion geolocation arrays. Generic HDF5 tree access is out of
// scope.
package viirs

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/hdf5"

	"github.com/awhall/gorast/pkg/grid"
)

// A File is an opened VIIRS HDF5 product.
type File struct {
	Filepath string

	// GeoFilepath is the geolocation companion file, either passed in,
	// derived from the product file name, or empty when the product
	// carries its own GEO group.
	GeoFilepath string

	f       *hdf5.File
	dirname string
	labels  map[string]string // band label -> All_Data group name
}

const allData = "All_Data"

// Open opens a VIIRS HDF5 file. geofilepath overrides geolocation
// lookup; pass "" to derive it from the file name convention.
func Open(filepath_, geofilepath string) (*File, error) {
	log.Printf("opening %s", filepath_)
	f, err := hdf5.OpenFile(filepath_, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s as HDF5: %v", filepath_, err)
	}

	v := File{
		Filepath: filepath_,
		f:        f,
		dirname:  filepath.Dir(filepath_),
		labels:   map[string]string{},
	}
	if err := v.scanBands(); err != nil {
		v.f.Close()
		return nil, err
	}

	if geofilepath != "" {
		v.GeoFilepath = geofilepath
	} else if _, embedded := v.labels["GEO"]; !embedded {
		v.GeoFilepath = findGeoFile(v.dirname, filepath.Base(filepath_))
	}
	return &v, nil
}

func (v *File)Close() {
	v.f.Close()
}

func (v *File)scanBands() error {
	g, err := v.f.OpenGroup(allData)
	if err != nil {
		return fmt.Errorf("%s has no %s group, not a VIIRS product: %v", v.Filepath, allData, err)
	}
	defer g.Close()

	n, err := g.NumObjects()
	if err != nil {
		return fmt.Errorf("listing %s of %s: %v", allData, v.Filepath, err)
	}
	for i := uint(0); i < n; i++ {
		name, err := g.ObjectNameByIndex(i)
		if err != nil {
			return fmt.Errorf("listing %s of %s: %v", allData, v.Filepath, err)
		}
		v.labels[bandLabel(name)] = name
	}
	return nil
}

// bandLabel shortens an All_Data group name to its band label:
// "VIIRS-I4-SDR_All" -> "I4", "VIIRS-IMG-GEO_All" -> "GEO".
func bandLabel(groupname string) string {
	elems := strings.Split(groupname, "-")
	if strings.HasPrefix(elems[len(elems)-1], "GEO") {
		return "GEO"
	}
	if len(elems) < 2 {
		return groupname
	}
	return elems[len(elems)-2]
}

// Labels lists the band labels present in the file.
func (v *File)Labels() []string {
	out := make([]string, 0, len(v.labels))
	for l := range v.labels {
		out = append(out, l)
	}
	return out
}

// geo file prefixes by product prefix: terrain-corrected image-band and
// moderate-band geolocation, and the day-night-band geolocation
var geoPrefixes = map[string]string{
	"SVI": "GITCO", "SVM": "GMTCO", "SVD": "GDNBO", "DNB": "GDNBO",
}

// findGeoFile derives the geolocation companion of a VIIRS product file
// from the naming convention: same orbit/time stamp, GITCO/GMTCO/GDNBO
// prefix. Empty when nothing matches.
func findGeoFile(dirname, base string) string {
	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return ""
	}
	prefix, ok := geoPrefixes[parts[0][:min(3, len(parts[0]))]]
	if !ok {
		return ""
	}
	stamp := strings.Join(parts[1:4], "_") // satellite, date, start time

	entries, err := os.ReadDir(dirname)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) && strings.Contains(e.Name(), stamp) {
			return filepath.Join(dirname, e.Name())
		}
	}
	return ""
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// readDataset reads a 2D dataset from an open HDF5 file into a grid.
func readDataset(f *hdf5.File, path string) (*grid.Grid, error) {
	ds, err := f.OpenDataset(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %v", path, err)
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("dims of %s: %v", path, err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("dataset %s is %d-dimensional, want 2", path, len(dims))
	}

	nrow, ncol := int(dims[0]), int(dims[1])
	buf := make([]float64, nrow*ncol)
	if err := ds.Read(&buf); err != nil {
		return nil, fmt.Errorf("read %s: %v", path, err)
	}
	return grid.FromSlice(ncol, nrow, buf)
}

// Read reads one named dataset of a band group, e.g. ("I4",
// "BrightnessTemperature").
func (v *File)Read(label, dataset string) (*grid.Grid, error) {
	group, ok := v.labels[label]
	if !ok {
		return nil, fmt.Errorf("%s has no band %s, labels are %s",
			v.Filepath, label, strings.Join(v.Labels(), ", "))
	}
	return readDataset(v.f, allData+"/"+group+"/"+dataset)
}

// Band reads the primary physical dataset of a band: Radiance for SDR
// bands.
func (v *File)Band(label string) (*grid.Grid, error) {
	return v.Read(label, "Radiance")
}

// geoFile opens the file holding the geolocation arrays, which is
// either the companion file or, for aggregated products with embedded
// georeference, the product itself.
func (v *File)geoFile() (*hdf5.File, string, bool, error) {
	if v.GeoFilepath != "" {
		gf, err := hdf5.OpenFile(v.GeoFilepath, hdf5.F_ACC_RDONLY)
		if err != nil {
			return nil, "", false, fmt.Errorf("open georeference file %s: %v", v.GeoFilepath, err)
		}
		// the geo file has a single group under All_Data
		g, err := gf.OpenGroup(allData)
		if err != nil {
			gf.Close()
			return nil, "", false, fmt.Errorf("georeference file %s has no %s: %v", v.GeoFilepath, allData, err)
		}
		defer g.Close()
		name, err := g.ObjectNameByIndex(0)
		if err != nil {
			gf.Close()
			return nil, "", false, fmt.Errorf("georeference file %s is empty: %v", v.GeoFilepath, err)
		}
		return gf, name, true, nil
	}
	if group, ok := v.labels["GEO"]; ok {
		return v.f, group, false, nil
	}
	return nil, "", false, fmt.Errorf("unable to find georeference information for %s", v.Filepath)
}

func (v *File)geoArray(dataset string) (*grid.Grid, error) {
	gf, group, needClose, err := v.geoFile()
	if err != nil {
		return nil, err
	}
	if needClose {
		defer gf.Close()
	}
	return readDataset(gf, allData+"/"+group+"/"+dataset)
}

// Lats returns the per-pixel latitudes from the georeference arrays.
func (v *File)Lats() (*grid.Grid, error) {
	return v.geoArray("Latitude")
}

// Lons returns the per-pixel longitudes from the georeference arrays.
func (v *File)Lons() (*grid.Grid, error) {
	return v.geoArray("Longitude")
}
