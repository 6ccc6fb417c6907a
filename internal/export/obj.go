package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/roach88/lily/internal/ir"
)

// WriteOBJ writes m as Wavefront OBJ. The mesh lies in the z = 0 plane.
func WriteOBJ(w io.Writer, m *ir.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# lily mesh: %d vertices, %d triangles\n", len(m.Vertices), m.TriangleCount())
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s 0\n", formatFloat(v.Position.X), formatFloat(v.Position.Y))
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
