package domain

import "time"

// Summary is the report of one export run.
type Summary struct {
	ClassifyDuration  time.Duration
	ExportDuration    time.Duration
	CompositeDuration time.Duration
	MissCount         int
	HitCount          int
	GroupCount        int
	OutputPath        string
}

// RunOptions controls a single export run.
type RunOptions struct {
	// DPI is passed verbatim to the renderer. Nil keeps the renderer default.
	DPI *float64
	// MaxPerGroup bounds the number of tiles composited in one pass.
	MaxPerGroup int
	// PageOpacity is written to every synthesized composite document.
	PageOpacity float64
	// Force treats every node as a cache miss.
	Force bool
	// ThumbnailWidth enables a downscaled copy of the output when positive.
	ThumbnailWidth int
}

// RunContext carries the state of one run through the pipeline phases.
// Each phase returns an updated copy instead of mutating shared state.
type RunContext struct {
	Layout    Layout
	Document  *Document
	Options   RunOptions
	Partition Partition
	Tiles     []string
	Summary   Summary
}
