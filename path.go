package lison

import (
	"fmt"
	"strings"
)

// This file defines a recorded path, for canvas implementations
// which need to replay the current path.

// Operation is one path construction command.
type Operation interface {
	drawTo(b PathBuilder)
}

type MoveTo Point

type LineTo Point

type CubicTo [3]Point

type Close struct{}

func (op MoveTo) drawTo(b PathBuilder) { b.MoveTo(op.X, op.Y) }

func (op LineTo) drawTo(b PathBuilder) { b.LineTo(op.X, op.Y) }

func (op CubicTo) drawTo(b PathBuilder) {
	b.CubicTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
}

func (op Close) drawTo(b PathBuilder) { b.ClosePath() }

// Path records a sequence of operations. It implements PathBuilder.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
				op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

func (p *Path) MoveTo(x, y float64) { *p = append(*p, MoveTo{X: x, Y: y}) }

func (p *Path) LineTo(x, y float64) { *p = append(*p, LineTo{X: x, Y: y}) }

func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	*p = append(*p, CubicTo{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}})
}

func (p *Path) ClosePath() { *p = append(*p, Close{}) }

// Replay sends the recorded operations to b, in order.
func (p Path) Replay(b PathBuilder) {
	for _, op := range p {
		op.drawTo(b)
	}
}

// SubPaths returns the number of sub-paths, that is of MoveTo operations.
func (p Path) SubPaths() int {
	n := 0
	for _, op := range p {
		if _, ok := op.(MoveTo); ok {
			n++
		}
	}
	return n
}
