package overlay

import "image/color"

// markerPalette cycles by marker id. The hex and RGBA forms must stay in
// step; the first feeds the page script, the second the screenshot annotator.
var markerPalette = []string{
	"#e8453c", "#4285f4", "#34a853", "#fbbc05", "#a142f4", "#24c1e0",
}

var markerPaletteRGBA = []color.RGBA{
	{R: 232, G: 69, B: 60, A: 255},
	{R: 66, G: 133, B: 244, A: 255},
	{R: 52, G: 168, B: 83, A: 255},
	{R: 251, G: 188, B: 5, A: 255},
	{R: 161, G: 66, B: 244, A: 255},
	{R: 36, G: 193, B: 224, A: 255},
}

func markerColor(id int) string {
	return markerPalette[id%len(markerPalette)]
}

func markerRGBA(id int) color.RGBA {
	return markerPaletteRGBA[id%len(markerPaletteRGBA)]
}
