package landsat

import(
	"fmt"
	"path/filepath"
	"strings"

	"github.com/awhall/gorast/pkg/mtl"
)

// NormalizeSpacecraftID maps the metadata spelling of a spacecraft
// identifier onto the short form used throughout: "LANDSAT_8" -> "L8",
// "Landsat7" -> "L7".
func NormalizeSpacecraftID(spid string) string {
	if spid == "" {
		return ""
	}
	return strings.ToUpper(spid[:1]) + spid[len(spid)-1:]
}

// checkBand validates a label against the spacecraft's permissible set.
func checkBand(spacecraft, label string) error {
	valid, ok := Bands(spacecraft)
	if !ok {
		return fmt.Errorf("unknown spacecraft %q", spacecraft)
	}
	for _, b := range valid {
		if b == label {
			return nil
		}
	}
	return UnsupportedBandError{Spacecraft: spacecraft, Band: label, Valid: valid}
}

// bandToken rewrites a band label into the token used in metadata key
// names. Only the Landsat 7 dual-gain thermal labels differ from the
// label itself: the new metadata format names the low/high gain
// channels via VCID suffixes, the legacy format just appends 1 or 2 to
// the band number.
func bandToken(label string, newFormat bool) string {
	if newFormat {
		return strings.NewReplacer("L", "_VCID_1", "H", "_VCID_2").Replace(label)
	}
	return strings.NewReplacer("L", "1", "H", "2").Replace(label)
}

// bandFileKey builds the PRODUCT_METADATA key holding a band's file
// name.
func bandFileKey(label string, newFormat bool) string {
	if newFormat {
		return fmt.Sprintf("FILE_NAME_BAND_%s", bandToken(label, true))
	}
	return fmt.Sprintf("BAND%s_FILE_NAME", bandToken(label, false))
}

// resolveBandFile maps a validated band label onto the band's file name
// as recorded in the scene metadata, with the optional infix spliced in
// before the extension to address post-processed variants. Pure lookup,
// no file access.
func resolveBandFile(meta *mtl.Group, spacecraft string, newFormat bool, label, infix string) (string, error) {
	if err := checkBand(spacecraft, label); err != nil {
		return "", err
	}
	pm, err := meta.Group("PRODUCT_METADATA")
	if err != nil {
		return "", err
	}
	fn, err := pm.Str(bandFileKey(label, newFormat))
	if err != nil {
		return "", err
	}
	if infix == "" {
		return fn, nil
	}
	ext := filepath.Ext(fn)
	return strings.TrimSuffix(fn, ext) + infix + ext, nil
}
