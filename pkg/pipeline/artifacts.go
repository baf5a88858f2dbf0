package pipeline

// Artifact paths produced by the external suite, relative to the input
// directory. The Z_Num8_DeZoom1 names are fixed by the Malt UrbanMNE mode at
// zoom 1 with 8 refinement iterations.
const (
	HomolDir = "Homol"

	MECDir        = "MEC-Malt"
	DSMFile       = "MEC-Malt/Z_Num8_DeZoom1_STD-MALT.tif"
	DSMWorldFile  = "MEC-Malt/Z_Num8_DeZoom1_STD-MALT.tfw"
	DSMGeoXMLFile = "MEC-Malt/Z_Num8_DeZoom1_STD-MALT.xml"
	ShadeFile     = "MEC-Malt/Z_Num8_DeZoom1_STD-MALTShade.tif"
	MaskFile      = "MEC-Malt/Masq_STD-MALT_DeZoom1.tif"

	OrthoDir        = "Ortho-MEC-Malt"
	OrthoMosaicFile = "Ortho-MEC-Malt/Orthophotomosaic.tif"

	GeoDir     = "geo"
	GeoDSMFile = "geo/DSM.tif"
)

// OriDir returns the directory MicMac writes an orientation set to.
func OriDir(orientation string) string {
	return "Ori-" + orientation
}
