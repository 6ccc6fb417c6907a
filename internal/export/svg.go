package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/roach88/lily/internal/ir"
)

// WriteSVG writes m as an SVG document with one polygon per triangle,
// filled with the color of the triangle's first vertex.
func WriteSVG(w io.Writer, m *ir.Mesh) error {
	bw := bufio.NewWriter(w)

	b := m.Bounds()
	width, height := max(b.Width(), 1), max(b.Height(), 1)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		formatFloat(b.Min.X), formatFloat(b.Min.Y), formatFloat(width), formatFloat(height),
		formatFloat(width), formatFloat(height))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, c, d := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		fmt.Fprintf(bw, `  <polygon points="%s %s %s"%s/>`+"\n",
			svgPoint(a.Position), svgPoint(c.Position), svgPoint(d.Position), svgFill(a.Color))
	}

	bw.WriteString("</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgPoint(p ir.Point) string {
	return formatFloat(p.X) + "," + formatFloat(p.Y)
}

func svgFill(c ir.Color) string {
	hex := c.Hex()
	if len(hex) == 9 {
		return fmt.Sprintf(` fill="%s" fill-opacity="%s"`, hex[:7], formatFloat(c.A))
	}
	return fmt.Sprintf(` fill="%s"`, hex)
}
