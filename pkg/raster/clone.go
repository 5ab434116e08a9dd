package raster

import(
	"fmt"
	"os"
	"path/filepath"

	"github.com/lukeroth/gdal"

	"github.com/awhall/gorast/pkg/grid"
)

// DType names the element type a cloned dataset should be written as.
type DType int

const (
	Uint8 DType = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Float32
	Float64
	Complex32 // 16-bit-component complex; GDAL's CInt16 is not a numeric type we emit
	Complex64
	Complex128
)

var dtypeNames = map[DType]string{
	Uint8: "uint8", Int8: "int8",
	Uint16: "uint16", Int16: "int16",
	Uint32: "uint32", Int32: "int32",
	Float32: "float32", Float64: "float64",
	Complex32: "complex32", Complex64: "complex64", Complex128: "complex128",
}

func (dt DType)String() string {
	if s, ok := dtypeNames[dt]; ok {
		return s
	}
	return fmt.Sprintf("dtype(%d)", int(dt))
}

// gdalType maps supported element types onto the GDAL binding's own
// type enumeration. Unmapped types are unsupported.
func gdalType(dt DType) (gdal.DataType, bool) {
	switch dt {
	case Uint8, Int8:
		return gdal.Byte, true
	case Uint16:
		return gdal.UInt16, true
	case Int16:
		return gdal.Int16, true
	case Uint32:
		return gdal.UInt32, true
	case Int32:
		return gdal.Int32, true
	case Float32:
		return gdal.Float32, true
	case Float64:
		return gdal.Float64, true
	case Complex64:
		return gdal.CFloat32, true
	case Complex128:
		return gdal.CFloat64, true
	}
	return gdal.Unknown, false
}

// validDestination checks a clone target path without touching it.
func validDestination(newpath string) error {
	dirname, _ := filepath.Split(newpath)
	if dirname != "" {
		if fi, err := os.Stat(dirname); err != nil || !fi.IsDir() {
			return InvalidDestinationError{Path: newpath,
				Reason: fmt.Sprintf("%s is not a valid directory to save a file to", dirname)}
		}
	}
	if fi, err := os.Stat(newpath); err == nil && fi.IsDir() {
		return InvalidDestinationError{Path: newpath,
			Reason: "path is a directory, choose a name suitable for writing a dataset to"}
	}
	return nil
}

// matchesShape checks new data against the source's full shape or its
// single-band shape.
func (r *Raster)matchesShape(data *grid.Cube) bool {
	if data.Dx() != r.ncol || data.Dy() != r.nrow {
		return false
	}
	return data.NBands() == r.nbands || data.NBands() == 1
}

// Clone writes data to a new raster file at newpath, carrying over this
// raster's georeference and projection, and returns a freshly opened
// accessor for it. All validation happens before any file is created.
func (r *Raster)Clone(newpath string, data *grid.Cube, dt DType) (*Raster, error) {
	if err := validDestination(newpath); err != nil {
		return nil, err
	}
	if !r.matchesShape(data) {
		return nil, ShapeMismatchError{
			WantX: r.ncol, WantY: r.nrow, WantBands: r.nbands,
			GotX: data.Dx(), GotY: data.Dy(), GotBands: data.NBands(),
		}
	}
	gt, ok := gdalType(dt)
	if !ok {
		return nil, UnsupportedDataTypeError{DType: dt}
	}

	driver, err := gdal.GetDriverByName("GTiff")
	if err != nil {
		return nil, fmt.Errorf("GTiff driver: %v", err)
	}
	ds := driver.Create(newpath, r.ncol, r.nrow, data.NBands(), gt, nil)

	if err := ds.SetProjection(r.Projection()); err != nil {
		ds.Close()
		return nil, fmt.Errorf("set projection on %s: %v", newpath, err)
	}
	if err := ds.SetGeoTransform(r.gt); err != nil {
		ds.Close()
		return nil, fmt.Errorf("set geotransform on %s: %v", newpath, err)
	}
	for i := 0; i < data.NBands(); i++ {
		band := ds.RasterBand(i + 1)
		if err := band.IO(gdal.Write, 0, 0, r.ncol, r.nrow,
			data.Band(i).Values(), r.ncol, r.nrow, 0, 0); err != nil {
			ds.Close()
			return nil, fmt.Errorf("write band %d of %s: %v", i+1, newpath, err)
		}
	}

	// Flush to disk before reopening
	ds.Close()
	return Open(newpath)
}

// CloneGrid clones with a single band of data.
func (r *Raster)CloneGrid(newpath string, g *grid.Grid, dt DType) (*Raster, error) {
	c, err := grid.NewCube(g)
	if err != nil {
		return nil, err
	}
	return r.Clone(newpath, c, dt)
}
