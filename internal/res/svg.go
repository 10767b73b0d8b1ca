package res

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// svgRasterWidth is the pixel width SVG logos are rasterised at
const svgRasterWidth = 656

// RasterizeSVG renders SVG markup to a transparent PNG width pixels wide,
// keeping the view box aspect ratio
func RasterizeSVG(r io.Reader, width int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("failed to rasterize SVG: empty view box")
	}
	if width <= 0 {
		width = int(math.Ceil(vw))
	}
	height := max(1, int(math.Round(float64(width)*vh/vw)))

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode SVG raster: %w", err)
	}
	return buf.Bytes(), nil
}
