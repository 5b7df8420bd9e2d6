package hw

import (
	"image"
	"image/png"
	"os"
)

// NTSCWidth and NTSCHeight are the pixel dimensions of the picture produced
// by PPU.Output on an NTSC console.
const (
	NTSCWidth  = 256
	NTSCHeight = 240
)

// SaveAsPNG writes img to path as a PNG file, creating or truncating it.
func SaveAsPNG(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
