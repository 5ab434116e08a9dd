package mtl

import(
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `GROUP = L1_METADATA_FILE
  GROUP = METADATA_FILE_INFO
    ORIGIN = "Image courtesy of the U.S. Geological Survey"
    PROCESSING_SOFTWARE_VERSION = "LPGS_2.3.0"
  END_GROUP = METADATA_FILE_INFO
  GROUP = PRODUCT_METADATA
    SPACECRAFT_ID = "LANDSAT_8"
    DATE_ACQUIRED = 2013-05-24
    WRS_PATH = 48
    CLOUD_COVER = 12.45
  END_GROUP = PRODUCT_METADATA
END_GROUP = L1_METADATA_FILE
END
`

func TestParse(t *testing.T) {
	meta, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "L1_METADATA_FILE", meta.Name)

	pm, err := meta.Group("PRODUCT_METADATA")
	require.NoError(t, err)

	spid, err := pm.Str("SPACECRAFT_ID")
	require.NoError(t, err)
	assert.Equal(t, "LANDSAT_8", spid)

	cc, err := pm.Float("CLOUD_COVER")
	require.NoError(t, err)
	assert.Equal(t, 12.45, cc)

	path, err := pm.Int("WRS_PATH")
	require.NoError(t, err)
	assert.Equal(t, 48, path)

	d, err := pm.Date("DATE_ACQUIRED")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2013, 5, 24, 0, 0, 0, 0, time.UTC), d)
}

func TestMissingKeys(t *testing.T) {
	meta, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	_, err = meta.Group("NO_SUCH_GROUP")
	var missing MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "NO_SUCH_GROUP", missing.Key)

	pm, _ := meta.Group("PRODUCT_METADATA")
	_, err = pm.Float("NO_SUCH_KEY")
	assert.ErrorAs(t, err, &missing)

	assert.True(t, pm.Has("SPACECRAFT_ID"))
	assert.False(t, pm.Has("NO_SUCH_KEY"))
	assert.True(t, meta.HasGroup("METADATA_FILE_INFO"))
}

func TestTypeMismatches(t *testing.T) {
	meta, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	pm, _ := meta.Group("PRODUCT_METADATA")

	_, err = pm.Float("SPACECRAFT_ID")
	assert.Error(t, err)

	// numbers render back as strings on demand
	s, err := pm.Str("CLOUD_COVER")
	require.NoError(t, err)
	assert.Equal(t, "12.45", s)
}

func TestParseUnbalanced(t *testing.T) {
	_, err := Parse(strings.NewReader("GROUP = A\nKEY = 1\nEND\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("END_GROUP = A\n"))
	assert.Error(t, err)
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LC80480192013144LGN00_MTL.txt"), []byte(sample), 0644))

	meta, err := ParseDir(dir)
	require.NoError(t, err)
	assert.True(t, meta.HasGroup("PRODUCT_METADATA"))

	_, err = ParseDir(t.TempDir())
	assert.Error(t, err)
}
