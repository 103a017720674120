// Package instructions builds the action strings executed by the renderer.
package instructions

import (
	"go.trai.ch/inkcache/internal/core/domain"
)

// BuildExportBatch returns one export directive per miss, in order. Every
// directive targets the node's tile in the cache directory of layout.
func BuildExportBatch(misses []domain.NodeRecord, layout domain.Layout, dpi *float64) domain.ExportBatch {
	batch := domain.ExportBatch{
		AreaPage:   true,
		IDOnly:     true,
		DPI:        dpi,
		Directives: make([]domain.ExportDirective, 0, len(misses)),
	}
	for _, n := range misses {
		batch.Directives = append(batch.Directives, domain.ExportDirective{
			NodeID:     n.ID,
			TargetPath: layout.NodeTilePath(n.ID),
		})
	}
	return batch
}

// Export returns the instructions executing batch. The global clause is
// emitted even when the batch has no directives.
func Export(batch domain.ExportBatch) domain.Instructions {
	return domain.Instructions{
		Actions: batch.String(),
		Outputs: batch.Targets(),
	}
}

// CompositeInstructions returns the instructions rendering a composite
// document to outputPath.
func CompositeInstructions(outputPath string, dpi *float64) domain.Instructions {
	actions := "export-area-page; "
	if dpi != nil {
		actions += "export-dpi:" + domain.FormatDPI(*dpi) + "; "
	}
	actions += "export-filename:" + outputPath + "; export-do"

	return domain.Instructions{
		Actions: actions,
		Outputs: []string{outputPath},
	}
}
