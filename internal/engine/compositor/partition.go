// Package compositor merges raster tiles into a single image through
// bounded composite passes.
package compositor

import "go.trai.ch/inkcache/internal/core/domain"

// PartitionTiles splits tiles into consecutive groups of at most maxPerGroup
// tiles, preserving order. No tiles yield a single empty group so that a
// blank composite is still produced. A maxPerGroup below one is treated as
// the default group size.
func PartitionTiles(tiles []string, maxPerGroup int) []domain.TileGroup {
	if maxPerGroup < 1 {
		maxPerGroup = domain.DefaultMaxPerGroup
	}
	if len(tiles) == 0 {
		return []domain.TileGroup{{Index: 0}}
	}

	groups := make([]domain.TileGroup, 0, (len(tiles)+maxPerGroup-1)/maxPerGroup)
	for start := 0; start < len(tiles); start += maxPerGroup {
		end := min(start+maxPerGroup, len(tiles))
		groups = append(groups, domain.TileGroup{
			Index: len(groups),
			Tiles: append([]string(nil), tiles[start:end]...),
		})
	}
	return groups
}
