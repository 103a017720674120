package ports

// Thumbnailer writes a downscaled copy of a raster image.
//
//go:generate go run go.uber.org/mock/mockgen -source=thumbnailer.go -destination=mocks/mock_thumbnailer.go -package=mocks
type Thumbnailer interface {
	// Thumbnail scales src to width pixels, keeping the aspect ratio, and
	// writes the result to dst as PNG.
	Thumbnail(src, dst string, width int) error
}
