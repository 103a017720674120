// Package domain contains the core types of the incremental exporter.
package domain

// Geometry holds the document-level attributes that every synthesized
// composite document inherits from the source document.
type Geometry struct {
	Width       string
	Height      string
	ViewBox     string
	Version     string
	DocumentID  string
	NamedViewID string
	PageColor   string
}

// NodeRecord is a single drawable node discovered by the document walk.
// Content is the node's serialization and is compared byte-for-byte against
// the cached copy.
type NodeRecord struct {
	ID      string
	Content []byte
}

// Document is a pre-filtered, ordered view of a source document.
// Nodes are kept in document encounter order, which is also the z-order of
// the composited tiles.
type Document struct {
	Path     string
	Geometry Geometry
	Nodes    []NodeRecord
}

// NodeIDs returns the ids of all nodes in encounter order.
func (d *Document) NodeIDs() []string {
	ids := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = n.ID
	}
	return ids
}
