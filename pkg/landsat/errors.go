package landsat

import(
	"fmt"
	"strings"
)

// An UnsupportedBandError reports a band label outside the spacecraft's
// permissible set.
type UnsupportedBandError struct {
	Spacecraft string
	Band       string
	Valid      []string
}

func (e UnsupportedBandError)Error() string {
	return fmt.Sprintf("spacecraft %s does not have a band %s, permissible band labels are %s",
		e.Spacecraft, e.Band, strings.Join(e.Valid, ", "))
}

// A MissingMetadataError means a calibration computation was requested
// but the required scene metadata is not there.
type MissingMetadataError struct {
	What string
}

func (e MissingMetadataError)Error() string {
	return fmt.Sprintf("no metadata available: %s", e.What)
}
