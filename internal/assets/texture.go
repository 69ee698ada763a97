package assets

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Image is tightly packed RGBA8, ready for a texture upload.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

func (img *Image) BytesPerRow() uint32 {
	return uint32(4 * img.Width)
}

// DecodeTexture reads png, jpeg, gif, bmp, tiff or webp and converts it to RGBA8.
func DecodeTexture(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrTextureDecode, Err: err}
	}
	return toRGBA(src), nil
}

func toRGBA(src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// SolidImage returns a 1x1 image of c.
func SolidImage(c color.RGBA) *Image {
	return &Image{Width: 1, Height: 1, Pix: []byte{c.R, c.G, c.B, c.A}}
}

// ColorImage converts a float RGBA color to a 1x1 image.
func ColorImage(rgba [4]float32) *Image {
	conv := func(v float32) byte {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return byte(v*255 + 0.5)
	}
	return SolidImage(color.RGBA{R: conv(rgba[0]), G: conv(rgba[1]), B: conv(rgba[2]), A: conv(rgba[3])})
}
