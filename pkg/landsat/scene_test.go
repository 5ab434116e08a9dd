package landsat

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScene(t *testing.T, doc string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "scene_MTL.txt"), []byte(doc), 0644)
	require.NoError(t, err)
	return dir
}

func TestNewSceneL8(t *testing.T) {
	s, err := NewScene(writeScene(t, l8MTL))
	require.NoError(t, err)

	assert.Equal(t, "L8", s.Spacecraft)
	assert.True(t, s.NewMetaFormat)
	assert.Equal(t, 2, s.MajorSWVersion)
}

func TestNewSceneL7Legacy(t *testing.T) {
	s, err := NewScene(writeScene(t, l7LegacyMTL))
	require.NoError(t, err)

	assert.Equal(t, "L7", s.Spacecraft)
	assert.False(t, s.NewMetaFormat)
	assert.Equal(t, 11, s.MajorSWVersion)
}

func TestNewSceneWithoutMetadata(t *testing.T) {
	_, err := NewScene(t.TempDir())
	assert.Error(t, err, "scene construction fails fast without an MTL file")
}

func TestSceneBandUnsupportedLabel(t *testing.T) {
	s, err := NewScene(writeScene(t, l8MTL))
	require.NoError(t, err)

	_, err = s.Band("99")
	var ube UnsupportedBandError
	assert.ErrorAs(t, err, &ube, "label validation happens before any file access")
}

func TestCanonicalLabel(t *testing.T) {
	assert.Equal(t, "6H", canonicalLabel("band6h"))
	assert.Equal(t, "10", canonicalLabel("BAND10"))
	assert.Equal(t, "4", canonicalLabel("4"))
	assert.Equal(t, "6L", canonicalLabel(" 6l "))
}

func TestDetectMetaFormat(t *testing.T) {
	newFormat, version, err := detectMetaFormat(parseMTL(t, l8MTL))
	require.NoError(t, err)
	assert.True(t, newFormat)
	assert.Equal(t, "LPGS_2.3.0", version)

	newFormat, version, err = detectMetaFormat(parseMTL(t, l7LegacyMTL))
	require.NoError(t, err)
	assert.False(t, newFormat)
	assert.Equal(t, "LPGS_11.4.0", version)

	_, _, err = detectMetaFormat(nil)
	var missing MissingMetadataError
	assert.ErrorAs(t, err, &missing)
}

func TestMajorVersion(t *testing.T) {
	for _, c := range []struct {
		in   string
		want int
	}{
		{"LPGS_2.3.0", 2},
		{"LPGS_12.5.0", 12},
		{"NLAPS_4.1", 4},
	} {
		n, err := majorVersion(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, n)
	}

	_, err := majorVersion("garbage")
	assert.Error(t, err)
}

func TestThermalLabel(t *testing.T) {
	for _, c := range []struct {
		doc  string
		want string
	}{
		{l8MTL, "10"},
		{l7LegacyMTL, "6H"},
	} {
		s, err := NewScene(writeScene(t, c.doc))
		require.NoError(t, err)
		assert.Equal(t, c.want, s.ThermalLabel())
	}
}

func TestIndexBandPairs(t *testing.T) {
	assert.Equal(t, [2]string{"5", "4"}, ndviBands["L8"])
	assert.Equal(t, [2]string{"4", "3"}, ndviBands["L7"])
	assert.Equal(t, [2]string{"5", "7"}, nbrBands["L8"])
	assert.Equal(t, [2]string{"4", "7"}, nbrBands["L5"])
}

func TestSceneIndexSurfacesBandFailure(t *testing.T) {
	// The band files named by the metadata don't exist on disk, so the
	// index must fail and say so; the unsupported-label case must
	// surface the resolver error.
	s, err := NewScene(writeScene(t, l8MTL))
	require.NoError(t, err)

	_, err = s.NDVI()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NDVI band")
}
