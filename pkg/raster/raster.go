// Package raster wraps a single geo-referenced raster file behind GDAL,
// exposing pixel data as grids plus the affine georeference and
// projection. Landsat band files are plain single-band GeoTIFFs, but
// multi-band files work too.
package raster

import(
	"fmt"

	"github.com/lukeroth/gdal"

	"github.com/awhall/gorast/pkg/grid"
)

type Raster struct {
	ds       gdal.Dataset
	Filepath string

	ncol, nrow, nbands int
	gt                 [6]float64
}

// Open opens an existing raster file read-only.
func Open(filepath string) (*Raster, error) {
	ds, err := gdal.Open(filepath, gdal.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open raster %s: %v", filepath, err)
	}

	r := Raster{
		ds:       ds,
		Filepath: filepath,
		ncol:     ds.RasterXSize(),
		nrow:     ds.RasterYSize(),
		nbands:   ds.RasterCount(),
		gt:       ds.GeoTransform(),
	}
	return &r, nil
}

func (r *Raster)NCol() int                  { return r.ncol }
func (r *Raster)NRow() int                  { return r.nrow }
func (r *Raster)NBands() int                { return r.nbands }
func (r *Raster)GeoTransform() [6]float64   { return r.gt }

// Close releases the underlying GDAL dataset. The raster is unusable
// afterwards.
func (r *Raster)Close() {
	r.ds.Close()
}

// Extent returns the upper-left and lower-right corner coordinates in
// the raster's own spatial reference.
func (r *Raster)Extent() (ulx, uly, lrx, lry float64) {
	return corners(r.gt, r.ncol, r.nrow)
}

// corners derives the corner coordinates from the six affine
// georeference coefficients, per the GDAL data model.
func corners(gt [6]float64, ncol, nrow int) (ulx, uly, lrx, lry float64) {
	ulx = gt[0]
	uly = gt[3]
	lrx = ulx + float64(ncol)*gt[1] + float64(nrow)*gt[2]
	lry = uly + float64(ncol)*gt[4] + float64(nrow)*gt[5]
	return
}

// Projection returns the raster's projection as WKT.
func (r *Raster)Projection() string {
	return r.ds.Projection()
}

// Proj4 returns the projection as a proj4 string.
func (r *Raster)Proj4() (string, error) {
	sr := gdal.CreateSpatialReference(r.Projection())
	p4, err := sr.ToProj4()
	if err != nil {
		return "", fmt.Errorf("projection of %s to proj4: %v", r.Filepath, err)
	}
	return p4, nil
}

// Grid reads the first band.
func (r *Raster)Grid() (*grid.Grid, error) {
	return r.readBand(1)
}

// Data reads all bands, band-major.
func (r *Raster)Data() (*grid.Cube, error) {
	bands := make([]*grid.Grid, 0, r.nbands)
	for i := 1; i <= r.nbands; i++ {
		g, err := r.readBand(i)
		if err != nil {
			return nil, err
		}
		bands = append(bands, g)
	}
	return grid.NewCube(bands...)
}

func (r *Raster)readBand(idx int) (*grid.Grid, error) {
	band := r.ds.RasterBand(idx)
	buf := make([]float64, r.ncol*r.nrow)
	if err := band.IO(gdal.Read, 0, 0, r.ncol, r.nrow, buf, r.ncol, r.nrow, 0, 0); err != nil {
		return nil, fmt.Errorf("read band %d of %s: %v", idx, r.Filepath, err)
	}
	return grid.FromSlice(r.ncol, r.nrow, buf)
}
