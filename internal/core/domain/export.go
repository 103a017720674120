package domain

import (
	"strconv"
	"strings"
)

// ExportDirective asks the renderer to export one node to a raster file.
type ExportDirective struct {
	NodeID     string
	TargetPath string
}

// ExportBatch is the set of directives executed by one renderer invocation.
// The batch always exports the whole page area and only the named node.
type ExportBatch struct {
	AreaPage   bool
	IDOnly     bool
	DPI        *float64
	Directives []ExportDirective
}

// Targets returns the target paths of every directive in order.
func (b ExportBatch) Targets() []string {
	targets := make([]string, len(b.Directives))
	for i, d := range b.Directives {
		targets[i] = d.TargetPath
	}
	return targets
}

// String serializes the batch to the renderer action grammar: the global
// clause, an optional dpi clause, then one clause per directive, all joined
// by single spaces.
func (b ExportBatch) String() string {
	var sb strings.Builder
	if b.AreaPage {
		sb.WriteString("export-area-page;")
	}
	if b.IDOnly {
		appendClause(&sb, "export-id-only;")
	}
	if b.DPI != nil {
		appendClause(&sb, "export-dpi:"+FormatDPI(*b.DPI)+";")
	}
	for _, d := range b.Directives {
		appendClause(&sb, "export-id:"+d.NodeID+"; export-filename:"+d.TargetPath+"; export-do;")
	}
	return sb.String()
}

func appendClause(sb *strings.Builder, clause string) {
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(clause)
}

// FormatDPI renders a dpi value in its shortest form, so 96 becomes "96".
func FormatDPI(dpi float64) string {
	return strconv.FormatFloat(dpi, 'f', -1, 64)
}

// Instructions is a serialized action string together with the files the
// renderer is expected to write when executing it.
type Instructions struct {
	Actions string
	Outputs []string
}

// String returns the action string passed to the renderer.
func (i Instructions) String() string {
	return i.Actions
}
