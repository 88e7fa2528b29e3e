package geometry

import (
	"errors"
	"fmt"
)

// ErrOpenEdge is returned when a triangle edge has no neighbour.
var ErrOpenEdge = errors.New("edge has no adjacent triangle")

type edge struct{ from, to uint32 }

// BuildAdjacency converts a closed triangle list into the
// GL_TRIANGLES_ADJACENCY layout. Triangle (a, b, c) becomes
// a, n(a,b), b, n(b,c), c, n(c,a) where n(x,y) is the vertex opposite the
// directed edge y->x in the neighbouring triangle.
func BuildAdjacency(indices []uint32) ([]uint32, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	// Opposite vertex of every directed edge.
	opposite := make(map[edge]uint32, len(indices))
	for t := 0; t < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		opposite[edge{a, b}] = c
		opposite[edge{b, c}] = a
		opposite[edge{c, a}] = b
	}

	out := make([]uint32, 0, len(indices)*2)
	for t := 0; t < len(indices); t += 3 {
		tri := [3]uint32{indices[t], indices[t+1], indices[t+2]}
		for i := range tri {
			from, to := tri[i], tri[(i+1)%3]
			n, ok := opposite[edge{to, from}]
			if !ok {
				return nil, fmt.Errorf("triangle %d edge %d-%d: %w", t/3, from, to, ErrOpenEdge)
			}
			out = append(out, from, n)
		}
	}
	return out, nil
}
