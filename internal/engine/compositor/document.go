package compositor

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"go.trai.ch/inkcache/internal/core/domain"
)

// NewCompositeDocument returns a document overlaying images, in order, at
// the full extent of geometry.
func NewCompositeDocument(geometry domain.Geometry, pageOpacity float64, images []string) domain.CompositeDocument {
	return domain.CompositeDocument{
		Geometry:    geometry,
		PageOpacity: pageOpacity,
		Images:      append([]string(nil), images...),
	}
}

// Render serializes doc as SVG. Image references are written verbatim and
// resolve relative to the directory the document is written to.
func Render(doc domain.CompositeDocument) []byte {
	g := doc.Geometry
	var b bytes.Buffer

	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	b.WriteString("<svg\n")
	writeAttr(&b, "   ", "width", g.Width)
	writeAttr(&b, "   ", "height", g.Height)
	writeAttr(&b, "   ", "viewBox", g.ViewBox)
	writeAttr(&b, "   ", "version", g.Version)
	writeAttr(&b, "   ", "id", g.DocumentID)
	b.WriteString(`   xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"` + "\n")
	b.WriteString(`   xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"` + "\n")
	b.WriteString(`   xmlns="http://www.w3.org/2000/svg"` + "\n")
	b.WriteString(`   xmlns:xlink="http://www.w3.org/1999/xlink"` + "\n")
	b.WriteString(`   xmlns:svg="http://www.w3.org/2000/svg">` + "\n")

	b.WriteString("  <sodipodi:namedview\n")
	writeAttr(&b, "     ", "id", g.NamedViewID)
	writeAttr(&b, "     ", "pagecolor", g.PageColor)
	fmt.Fprintf(&b, "     inkscape:pageopacity=\"%s\" />\n", strconv.FormatFloat(doc.PageOpacity, 'f', -1, 64))

	for i, img := range doc.Images {
		fmt.Fprintf(&b, "  <image xlink:href=\"%s\" x=\"0\" y=\"0\" width=\"%s\" height=\"%s\" id=\"tile%03d\" />\n",
			escape(img), escape(g.Width), escape(g.Height), i)
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

func writeAttr(b *bytes.Buffer, indent, name, value string) {
	fmt.Fprintf(b, "%s%s=\"%s\"\n", indent, name, escape(value))
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
