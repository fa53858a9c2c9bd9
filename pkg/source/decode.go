package source

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const formatSVG = "svg"

// Image is a decoded source reduced to one 8-bit intensity channel.
type Image struct {
	Gray   *image.Gray
	Format string
}

func (i *Image) Width() int {
	return i.Gray.Bounds().Dx()
}

func (i *Image) Height() int {
	return i.Gray.Bounds().Dy()
}

// Decode turns encoded image bytes into grayscale. Raster formats are
// detected by content; anything else is tried as SVG when the name or the
// document root says so. Transparent areas are composited onto white first.
func Decode(bs []byte, name string) (*Image, error) {
	var img image.Image

	_, format, err := image.DecodeConfig(bytes.NewReader(bs))
	switch {
	case err == nil:
		img, err = imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(true))
		if err != nil {
			return nil, err
		}
	case isSVG(bs, name):
		img, err = rasterizeSVG(bs)
		if err != nil {
			return nil, err
		}
		format = formatSVG
	default:
		return nil, errors.Wrap(err, "unsupported image")
	}

	return &Image{Gray: Grayscale(Flatten(img)), Format: format}, nil
}

// Flatten composites img onto an opaque white canvas of the same size.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Grayscale converts img to a single-channel image anchored at the origin.
func Grayscale(img image.Image) *image.Gray {
	g := imaging.Grayscale(img)
	dst := image.NewGray(g.Bounds())
	draw.Draw(dst, dst.Bounds(), g, g.Bounds().Min, draw.Src)
	return dst
}

// isSVG reports whether bs looks like an SVG document: either the name has
// an .svg extension or the root element, after any prolog, is <svg.
func isSVG(bs []byte, name string) bool {
	if strings.EqualFold(filepath.Ext(name), "."+formatSVG) {
		return true
	}
	rest := bytes.TrimPrefix(bs, []byte("\xef\xbb\xbf"))
	for {
		rest = bytes.TrimLeft(rest, " \t\r\n")
		switch {
		case bytes.HasPrefix(rest, []byte("<svg")):
			return true
		case bytes.HasPrefix(rest, []byte("<?")):
			rest = skipPast(rest, "?>")
		case bytes.HasPrefix(rest, []byte("<!--")):
			rest = skipPast(rest, "-->")
		case bytes.HasPrefix(rest, []byte("<!")):
			rest = skipPast(rest, ">")
		default:
			return false
		}
		if rest == nil {
			return false
		}
	}
}

func skipPast(bs []byte, end string) []byte {
	_, after, ok := bytes.Cut(bs, []byte(end))
	if !ok {
		return nil
	}
	return after
}

func rasterizeSVG(bs []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("svg has empty view box %vx%v", icon.ViewBox.W, icon.ViewBox.H)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
