// Package svg walks SVG documents and extracts their drawable nodes.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentLoader = (*Loader)(nil)

// shapeElements are exported as one node each. Their subtree is part of the node.
var shapeElements = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polyline": true,
	"polygon":  true,
	"text":     true,
	"flowRoot": true,
	"image":    true,
	"use":      true,
}

// skippedElements never contribute nodes, nor does anything nested in them.
var skippedElements = map[string]bool{
	"defs":      true,
	"clipPath":  true,
	"mask":      true,
	"pattern":   true,
	"marker":    true,
	"symbol":    true,
	"metadata":  true,
	"namedview": true,
}

// Loader implements ports.DocumentLoader for SVG files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and walks the document at path.
func (l *Loader) Load(path string) (*domain.Document, error) {
	//nolint:gosec // Path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrDocumentReadFailed, err), "path", path)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	doc.Path = path
	return doc, nil
}

// Parse walks an in-memory SVG document. Node content is the exact byte span
// of each shape element in data.
func Parse(data []byte) (*domain.Document, error) {
	w := &walker{
		data: data,
		dec:  xml.NewDecoder(bytes.NewReader(data)),
		seen: make(map[string]bool),
	}
	if err := w.walk(); err != nil {
		return nil, err
	}
	return &domain.Document{Geometry: w.geometry, Nodes: w.nodes}, nil
}

type walker struct {
	data     []byte
	dec      *xml.Decoder
	seen     map[string]bool
	geometry domain.Geometry
	nodes    []domain.NodeRecord
	rooted   bool
	viewSeen bool
}

func (w *walker) walk() error {
	for {
		start := w.dec.InputOffset()
		tok, err := w.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return parseError(err, w.dec.InputOffset())
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case !w.rooted:
			if err := w.readRoot(el); err != nil {
				return err
			}
		case el.Name.Local == "namedview":
			w.readNamedView(el)
			if err := w.dec.Skip(); err != nil {
				return parseError(err, w.dec.InputOffset())
			}
		case skippedElements[el.Name.Local]:
			if err := w.dec.Skip(); err != nil {
				return parseError(err, w.dec.InputOffset())
			}
		case shapeElements[el.Name.Local]:
			if err := w.readShape(el, start); err != nil {
				return err
			}
		}
	}

	if !w.rooted {
		return zerr.With(zerr.Wrap(domain.ErrMalformedDocument, "document has no root element"), "element", "svg")
	}
	if !w.viewSeen {
		w.geometry.NamedViewID = domain.DefaultNamedViewID
		w.geometry.PageColor = domain.DefaultPageColor
	}
	return nil
}

func (w *walker) readRoot(el xml.StartElement) error {
	w.rooted = true
	if el.Name.Local != "svg" {
		return zerr.With(zerr.Wrap(domain.ErrMalformedDocument, "root element is not svg"), "element", el.Name.Local)
	}

	g := &w.geometry
	fields := []struct {
		name string
		dst  *string
	}{
		{"width", &g.Width},
		{"height", &g.Height},
		{"viewBox", &g.ViewBox},
		{"version", &g.Version},
		{"id", &g.DocumentID},
	}
	for _, f := range fields {
		v, ok := attr(el, f.name)
		if !ok || strings.TrimSpace(v) == "" {
			return zerr.With(malformed(domain.ErrMissingGeometry), "attribute", f.name)
		}
		*f.dst = v
	}
	return nil
}

func (w *walker) readNamedView(el xml.StartElement) {
	if w.viewSeen {
		return
	}
	w.viewSeen = true
	w.geometry.NamedViewID = domain.DefaultNamedViewID
	if id, ok := attr(el, "id"); ok && id != "" {
		w.geometry.NamedViewID = id
	}
	w.geometry.PageColor = domain.DefaultPageColor
	if color, ok := attr(el, "pagecolor"); ok && color != "" {
		w.geometry.PageColor = color
	}
}

func (w *walker) readShape(el xml.StartElement, start int64) error {
	id, _ := attr(el, "id")
	if err := domain.ValidateNodeID(id); err != nil {
		return zerr.With(zerr.With(malformed(err), "node_id", id), "element", el.Name.Local)
	}
	if w.seen[id] {
		return zerr.With(malformed(domain.ErrDuplicateNodeID), "node_id", id)
	}
	w.seen[id] = true

	if err := w.dec.Skip(); err != nil {
		return zerr.With(parseError(err, w.dec.InputOffset()), "node_id", id)
	}
	end := w.dec.InputOffset()

	content := make([]byte, end-start)
	copy(content, w.data[start:end])
	w.nodes = append(w.nodes, domain.NodeRecord{ID: id, Content: content})
	return nil
}

func attr(el xml.StartElement, local string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == local && (a.Name.Space == "" || a.Name.Space == el.Name.Space) {
			return a.Value, true
		}
	}
	return "", false
}

func malformed(cause error) error {
	return fmt.Errorf("%w: %w", domain.ErrMalformedDocument, cause)
}

func parseError(err error, offset int64) error {
	return zerr.With(fmt.Errorf("%w: %w", domain.ErrDocumentParseFailed, err), "offset", offset)
}
