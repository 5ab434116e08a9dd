package viirs

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandLabel(t *testing.T) {
	cases := map[string]string{
		"VIIRS-I4-SDR_All":     "I4",
		"VIIRS-M13-SDR_All":    "M13",
		"VIIRS-DNB-SDR_All":    "DNB",
		"VIIRS-IMG-GEO_All":    "GEO",
		"VIIRS-IMG-GEO-TC_All": "GEO", // GEO is the second-to-last element here
		"VIIRS-MOD-GEO_All":    "GEO",
		"Oddball":              "Oddball",
	}
	for in, want := range cases {
		assert.Equal(t, want, bandLabel(in), in)
	}
}

func TestFindGeoFile(t *testing.T) {
	dir := t.TempDir()
	geo := "GITCO_npp_d20140908_t2105125_e2106367_b14845_c20140909_noaa_ops.h5"
	require.NoError(t, os.WriteFile(filepath.Join(dir, geo), nil, 0644))

	data := "SVI04_npp_d20140908_t2105125_e2106367_b14845_c20140910_noaa_ops.h5"
	assert.Equal(t, filepath.Join(dir, geo), findGeoFile(dir, data))

	// moderate-resolution bands want GMTCO, which is not there
	mdata := "SVM04_npp_d20140908_t2105125_e2106367_b14845_c20140910_noaa_ops.h5"
	assert.Equal(t, "", findGeoFile(dir, mdata))

	// different granule time stamp does not match
	other := "SVI04_npp_d20140908_t2200000_e2201242_b14846_c20140910_noaa_ops.h5"
	assert.Equal(t, "", findGeoFile(dir, other))

	// unparseable names give up quietly
	assert.Equal(t, "", findGeoFile(dir, "whatever.h5"))
}
