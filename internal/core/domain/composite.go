package domain

// TileGroup is a bounded, ordered subset of tiles composited in one pass.
type TileGroup struct {
	Index int
	Tiles []string
}

// CompositeDocument is a synthetic vector document that overlays a set of
// raster tiles at full document extent.
type CompositeDocument struct {
	Geometry    Geometry
	PageOpacity float64
	Images      []string
}
