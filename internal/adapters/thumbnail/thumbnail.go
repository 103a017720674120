// Package thumbnail writes downscaled copies of composited output images.
package thumbnail

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Thumbnailer = (*Scaler)(nil)

// Scaler implements ports.Thumbnailer with Catmull-Rom resampling.
type Scaler struct{}

// NewScaler creates a new Scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

// Thumbnail scales src to width pixels wide and writes a PNG to dst.
// Images narrower than width are copied at their original size.
func (s *Scaler) Thumbnail(src, dst string, width int) error {
	img, err := decode(src)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	w, h := Size(bounds.Dx(), bounds.Dy(), width)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, bounds, xdraw.Over, nil)

	return encode(dst, out)
}

// Size returns the thumbnail dimensions for an image of srcW x srcH pixels
// scaled to width, keeping the aspect ratio. The height is at least one pixel.
func Size(srcW, srcH, width int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if width <= 0 || width >= srcW {
		return srcW, srcH
	}
	h := (srcH*width + srcW/2) / srcW
	if h < 1 {
		h = 1
	}
	return width, h
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from the output layout
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrThumbnailFailed, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	img, err := png.Decode(f)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrThumbnailFailed, err), "path", path)
	}
	return img, nil
}

func encode(path string, img image.Image) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // output layout
	if err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrThumbnailFailed, err), "path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = zerr.With(fmt.Errorf("%w: %w", domain.ErrThumbnailFailed, cerr), "path", path)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrThumbnailFailed, err), "path", path)
	}
	return nil
}
