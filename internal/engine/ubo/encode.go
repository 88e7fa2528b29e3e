package ubo

import (
	"encoding/binary"
	stdmath "math"

	"github.com/Faultbox/umbra/pkg/math"
)

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], stdmath.Float32bits(f))
	}
}

// EncodeMat3x4 writes m as three std140 vec4 columns.
func EncodeMat3x4(dst []byte, m math.Mat3x4) {
	putFloats(dst[:Mat3x4Size], m[:])
}

// EncodeMat4 writes m column-major.
func EncodeMat4(dst []byte, m math.Mat4) {
	putFloats(dst[:Mat4Size], m[:])
}
