package sview

import (
	"image"

	"golang.org/x/image/draw"
)

// PictureFromImage copies img into a newly allocated RGBA picture.
// The result is owned by the caller until submitted.
func PictureFromImage(img image.Image) (*Picture, error) {
	b := img.Bounds()
	p, err := AllocPicture(b.Dx(), b.Dy(), FormatRGBA, false)
	if err != nil {
		return nil, err
	}
	dst := &image.RGBA{
		Pix:    p.Planes[0],
		Stride: p.Strides[0],
		Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
	}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return p, nil
}
