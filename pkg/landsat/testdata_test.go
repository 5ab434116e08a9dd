package landsat

import(
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/awhall/gorast/pkg/mtl"
)

// Minimal but structurally faithful metadata documents for the three
// calibration paths: L8, L7 with new-format metadata, L7 with legacy
// metadata.

const l8MTL = `GROUP = L1_METADATA_FILE
  GROUP = METADATA_FILE_INFO
    PROCESSING_SOFTWARE_VERSION = "LPGS_2.3.0"
  END_GROUP = METADATA_FILE_INFO
  GROUP = PRODUCT_METADATA
    SPACECRAFT_ID = "LANDSAT_8"
    DATE_ACQUIRED = 2013-05-24
    FILE_NAME_BAND_4 = "LC80480192013144LGN00_B4.TIF"
    FILE_NAME_BAND_5 = "LC80480192013144LGN00_B5.TIF"
    FILE_NAME_BAND_10 = "LC80480192013144LGN00_B10.TIF"
  END_GROUP = PRODUCT_METADATA
  GROUP = IMAGE_ATTRIBUTES
    SUN_ELEVATION = 45.0
  END_GROUP = IMAGE_ATTRIBUTES
  GROUP = RADIOMETRIC_RESCALING
    RADIANCE_MULT_BAND_4 = 9.5654E-03
    RADIANCE_ADD_BAND_4 = -47.82716
    RADIANCE_MULT_BAND_10 = 3.3420E-04
    RADIANCE_ADD_BAND_10 = 0.10000
    REFLECTANCE_MULT_BAND_4 = 2.0000E-05
    REFLECTANCE_ADD_BAND_4 = -0.100000
  END_GROUP = RADIOMETRIC_RESCALING
  GROUP = TIRS_THERMAL_CONSTANTS
    K1_CONSTANT_BAND_10 = 774.89
    K2_CONSTANT_BAND_10 = 1321.08
  END_GROUP = TIRS_THERMAL_CONSTANTS
END_GROUP = L1_METADATA_FILE
END
`

const l7NewMTL = `GROUP = L1_METADATA_FILE
  GROUP = METADATA_FILE_INFO
    PROCESSING_SOFTWARE_VERSION = "LPGS_12.5.0"
  END_GROUP = METADATA_FILE_INFO
  GROUP = PRODUCT_METADATA
    SPACECRAFT_ID = "LANDSAT_7"
    DATE_ACQUIRED = 2002-06-28
    FILE_NAME_BAND_4 = "LE70460312002179EDC00_B4.TIF"
    FILE_NAME_BAND_6_VCID_1 = "LE70460312002179EDC00_B6_VCID_1.TIF"
    FILE_NAME_BAND_6_VCID_2 = "LE70460312002179EDC00_B6_VCID_2.TIF"
  END_GROUP = PRODUCT_METADATA
  GROUP = MIN_MAX_RADIANCE
    RADIANCE_MAXIMUM_BAND_4 = 241.100
    RADIANCE_MINIMUM_BAND_4 = -5.100
    RADIANCE_MAXIMUM_BAND_6_VCID_2 = 12.650
    RADIANCE_MINIMUM_BAND_6_VCID_2 = 3.200
  END_GROUP = MIN_MAX_RADIANCE
  GROUP = MIN_MAX_PIXEL_VALUE
    QUANTIZE_CAL_MAX_BAND_4 = 255.0
    QUANTIZE_CAL_MIN_BAND_4 = 1.0
    QUANTIZE_CAL_MAX_BAND_6_VCID_2 = 255.0
    QUANTIZE_CAL_MIN_BAND_6_VCID_2 = 1.0
  END_GROUP = MIN_MAX_PIXEL_VALUE
  GROUP = IMAGE_ATTRIBUTES
    SUN_ELEVATION = 60.0
  END_GROUP = IMAGE_ATTRIBUTES
END_GROUP = L1_METADATA_FILE
END
`

const l7LegacyMTL = `GROUP = L1_METADATA_FILE
  GROUP = PRODUCT_METADATA
    SPACECRAFT_ID = "Landsat7"
    PROCESSING_SOFTWARE = "LPGS_11.4.0"
    ACQUISITION_DATE = 2001-06-24
    BAND4_FILE_NAME = "L71046031_03120010624_B40.TIF"
    BAND61_FILE_NAME = "L71046031_03120010624_B61.TIF"
    BAND62_FILE_NAME = "L72046031_03120010624_B62.TIF"
  END_GROUP = PRODUCT_METADATA
  GROUP = MIN_MAX_RADIANCE
    LMAX_BAND4 = 241.100
    LMIN_BAND4 = -5.100
    LMAX_BAND62 = 12.650
    LMIN_BAND62 = 3.200
  END_GROUP = MIN_MAX_RADIANCE
  GROUP = MIN_MAX_PIXEL_VALUE
    QCALMAX_BAND4 = 255.0
    QCALMIN_BAND4 = 1.0
    QCALMAX_BAND62 = 255.0
    QCALMIN_BAND62 = 1.0
  END_GROUP = MIN_MAX_PIXEL_VALUE
  GROUP = PRODUCT_PARAMETERS
    SUN_ELEVATION = 55.0
  END_GROUP = PRODUCT_PARAMETERS
END_GROUP = L1_METADATA_FILE
END
`

func parseMTL(t *testing.T, doc string) *mtl.Group {
	t.Helper()
	meta, err := mtl.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return meta
}
