package engine

import (
	"math"

	"github.com/roach88/lily/internal/ir"
)

// WidthFalloff is the factor applied to branch width per nesting level.
const WidthFalloff = 0.9

// BranchState is the turtle state of one branch. It is a plain value:
// Push copies it, so a pushed branch never aliases the one beneath it.
type BranchState struct {
	Position ir.Point
	Heading  ir.Rotation
	Scale    float32
	// Edge holds the indices of the two most recently emitted vertices of
	// this branch, the trailing edge the next segment connects to.
	Edge [2]uint32
}

// BranchStack is the turtle's save/restore stack. The last element is the
// current branch.
type BranchStack []BranchState

// Builder is the turtle stack machine. It appends to a single mesh and
// is not safe for concurrent use.
type Builder struct {
	opts  ir.SystemOptions
	mesh  *ir.Mesh
	stack BranchStack
}

// NewBuilder seeds a mesh with two vertices at ±BranchWidth/2 on the x axis
// and a root branch at the origin whose trailing edge is that seed pair.
func NewBuilder(opts ir.SystemOptions) *Builder {
	b := &Builder{opts: opts, mesh: ir.NewMesh()}

	x := opts.BranchWidth / 2
	left := b.emit(ir.Point{X: -x})
	right := b.emit(ir.Point{X: x})

	b.stack = BranchStack{{
		Position: ir.Origin,
		Heading:  ir.Identity,
		Scale:    1,
		Edge:     [2]uint32{left, right},
	}}
	return b
}

// BuildMesh runs program on a fresh builder and returns the mesh.
func BuildMesh(opts ir.SystemOptions, program []ir.Instruction) *ir.Mesh {
	b := NewBuilder(opts)
	for _, in := range program {
		b.Apply(in)
	}
	return b.Mesh()
}

// Apply executes one instruction against the current branch.
func (b *Builder) Apply(in ir.Instruction) {
	depth := len(b.stack)
	branch := &b.stack[depth-1]

	switch in.Kind {
	case ir.KindForward:
		b.forward(branch, depth, in.Value)
	case ir.KindTurn:
		branch.Heading = branch.Heading.Mul(ir.RotationFromAngle(ir.Radians(in.Value)))
	case ir.KindScale:
		branch.Scale *= in.Value
	case ir.KindPush:
		b.stack = append(b.stack, *branch)
	case ir.KindPop:
		// the root branch is never discarded
		if depth > 1 {
			b.stack = b.stack[:depth-1]
		}
	}
}

// forward emits one quad segment: two vertices straddling the branch
// position, stitched to the trailing edge with two triangles.
func (b *Builder) forward(branch *BranchState, depth int, length float32) {
	length *= branch.Scale
	width := b.opts.BranchWidth * float32(math.Pow(WidthFalloff, float64(depth)))

	forward := branch.Heading.Apply(ir.NegY).Mul(length)
	left := branch.Heading.Apply(ir.NegX).Mul(width / 2)

	l := b.emit(branch.Position.Add(left))
	r := b.emit(branch.Position.Sub(left))

	b.mesh.AddTriangle(branch.Edge[0], branch.Edge[1], l)
	b.mesh.AddTriangle(branch.Edge[1], l, r)

	branch.Edge = [2]uint32{l, r}
	branch.Position = branch.Position.Add(forward)
}

func (b *Builder) emit(p ir.Point) uint32 {
	return b.mesh.AddVertex(ir.Vertex{Position: p, Color: b.opts.BranchColor})
}

// Depth returns the number of branches on the stack; the root alone is 1.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Top returns a copy of the current branch state.
func (b *Builder) Top() BranchState {
	return b.stack[len(b.stack)-1]
}

// Mesh returns the mesh built so far.
func (b *Builder) Mesh() *ir.Mesh {
	return b.mesh
}
