package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of a file system event.
type WatchOp int

const (
	// OpWrite is a file content change.
	OpWrite WatchOp = iota
	// OpCreate is a file creation, including atomic replace-by-rename.
	OpCreate
	// OpRemove is a file removal.
	OpRemove
	// OpRename is a file rename.
	OpRename
)

// WatchEvent is a file system event on a watched file.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes to a single file.
type Watcher interface {
	// Start begins watching path.
	Start(ctx context.Context, path string) error
	// Stop releases the watcher resources and ends the event stream.
	Stop() error
	// Events returns an iterator of events for the watched file.
	Events() iter.Seq[WatchEvent]
}
