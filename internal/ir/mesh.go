package ir

// Vertex matches the renderer's vertex layout: position, texture
// coordinate, and RGBA color.
type Vertex struct {
	Position Point `json:"position"`
	TexCoord Point `json:"tex_coord"`
	Color    Color `json:"color"`
}

// Mesh is a triangle list. Every run of three indices forms one triangle.
// Vertices and indices are only ever appended.
type Mesh struct {
	Vertices []Vertex `json:"vertices"`
	Indices  []uint32 `json:"indices"`
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{Vertices: []Vertex{}, Indices: []uint32{}}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh has a zero rectangle.
func (m *Mesh) Bounds() Rect {
	if len(m.Vertices) == 0 {
		return Rect{}
	}

	bounds := Rect{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		bounds.Min = bounds.Min.Min(v.Position)
		bounds.Max = bounds.Max.Max(v.Position)
	}
	return bounds
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]Vertex{}, m.Vertices...),
		Indices:  append([]uint32{}, m.Indices...),
	}
}
