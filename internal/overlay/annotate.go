package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/nfnt/resize"
)

// labelScale blows each font pixel up to a small square
const labelScale = 2

// Annotate draws the marker boxes and id labels onto a copy of a screenshot.
// The source image is never modified.
func Annotate(src image.Image, markers []Marker) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)

	for _, m := range markers {
		c := markerRGBA(m.ID)
		drawBox(out, m, c)
		drawLabelChip(out, m, c)
	}
	return out
}

// SavePNG writes the image, downscaling to maxWidth when it is narrower than
// the image. Returns the encoded file size.
func SavePNG(img image.Image, outputPath string, maxWidth uint) (int64, error) {
	if maxWidth > 0 && uint(img.Bounds().Dx()) > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// drawBox strokes the marker rectangle two pixels thick
func drawBox(img *image.RGBA, m Marker, c color.RGBA) {
	x1, y1 := int(m.BBox.X), int(m.BBox.Y)
	x2, y2 := int(m.BBox.X+m.BBox.Width)-1, int(m.BBox.Y+m.BBox.Height)-1
	for t := 0; t < 2; t++ {
		drawHLine(img, x1+t, x2-t, y1+t, c)
		drawHLine(img, x1+t, x2-t, y2-t, c)
		drawVLine(img, x1+t, y1+t, y2-t, c)
		drawVLine(img, x2-t, y1+t, y2-t, c)
	}
}

// drawLabelChip fills a small id tag above the box's top-left corner,
// flipping inside the box when there is no room above.
func drawLabelChip(img *image.RGBA, m Marker, c color.RGBA) {
	glyphW := 3 * labelScale
	glyphH := 5 * labelScale
	pad := 2

	w := len(m.Label)*(glyphW+labelScale) - labelScale + 2*pad
	h := glyphH + 2*pad

	bounds := img.Bounds()
	x := int(m.BBox.X)
	y := int(m.BBox.Y) - h
	if y < bounds.Min.Y {
		y = int(m.BBox.Y)
	}
	if x+w > bounds.Max.X {
		x = bounds.Max.X - w
	}
	if x < bounds.Min.X {
		x = bounds.Min.X
	}

	fillRect(img, x, y, w, h, c)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dx := x + pad
	for _, ch := range m.Label {
		if ch < '0' || ch > '9' {
			continue
		}
		drawGlyph(img, dx, y+pad, digitGlyphs[ch-'0'], white)
		dx += glyphW + labelScale
	}
}

// digitGlyphs is a 3x5 bitmap font, one row per byte, high bit on the left
var digitGlyphs = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b010, 0b010, 0b010}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

func drawGlyph(img *image.RGBA, x, y int, glyph [5]uint8, c color.RGBA) {
	for row := 0; row < 5; row++ {
		for col := 0; col < 3; col++ {
			if glyph[row]&(1<<(2-col)) == 0 {
				continue
			}
			for dy := 0; dy < labelScale; dy++ {
				for dx := 0; dx < labelScale; dx++ {
					setPixelSafe(img, x+col*labelScale+dx, y+row*labelScale+dy, c)
				}
			}
		}
	}
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			setPixelSafe(img, x+dx, y+dy, c)
		}
	}
}

func drawHLine(img *image.RGBA, x1, x2, y int, c color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		setPixelSafe(img, x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y1, y2 int, c color.RGBA) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		setPixelSafe(img, x, y, c)
	}
}

func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}
