package raster

import "fmt"

// InvalidDestinationError means a clone target path cannot receive a
// dataset: its parent directory is missing, or the path already names a
// directory.
type InvalidDestinationError struct {
	Path   string
	Reason string
}

func (e InvalidDestinationError)Error() string {
	return fmt.Sprintf("cannot write dataset to %s: %s", e.Path, e.Reason)
}

// ShapeMismatchError means clone data does not match the source
// raster's single- or multi-band shape.
type ShapeMismatchError struct {
	WantX, WantY, WantBands int
	GotX, GotY, GotBands    int
}

func (e ShapeMismatchError)Error() string {
	return fmt.Sprintf("new and cloned dataset must be the same shape: want %dx%dx%d (or single-band), got %dx%dx%d",
		e.WantBands, e.WantY, e.WantX, e.GotBands, e.GotY, e.GotX)
}

// UnsupportedDataTypeError means the requested element type has no GDAL
// on-disk equivalent.
type UnsupportedDataTypeError struct {
	DType DType
}

func (e UnsupportedDataTypeError)Error() string {
	return fmt.Sprintf("data type %s cannot be converted to a GDAL data type", e.DType)
}
