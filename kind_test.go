package staticstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKindString(t *testing.T) {
	tests := []struct {
		kind ValueKind
		want string
	}{
		{Float32.Kind(), "float32"},
		{String.Kind(), "string"},
		{SeqOf(Float32).Kind(), "[]float32"},
		{Array3(Float32).Kind(), "[3]float32"},
		{SeqOf(Array3(Float32)).Kind(), "[][3]float32"},
		{Array2(SeqOf(Uint8)).Kind(), "[2][]uint8"},
		{ValueKind{Kind: KindSequence}, "[]invalid"},
		{Scalar(Kind(200)), "<unknown kind>"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestValueKindEqual(t *testing.T) {
	assert.True(t, SeqOf(Float32).Kind().Equal(Sequence(Scalar(KindFloat32))))
	assert.True(t, Array3(Float32).Kind().Equal(Tuple(Scalar(KindFloat32), 3)))

	assert.False(t, SeqOf(Float32).Kind().Equal(SeqOf(Array3(Float32)).Kind()), "element kinds differ")
	assert.False(t, Array3(Float32).Kind().Equal(Array4(Float32).Kind()), "arities differ")
	assert.False(t, Array3(Float32).Kind().Equal(SeqOf(Float32).Kind()), "tuple is not a sequence")
	assert.False(t, Float32.Kind().Equal(Float64.Kind()))
}

func TestValueKindFixedSize(t *testing.T) {
	assert.Equal(t, 1, Bool.Kind().FixedSize())
	assert.Equal(t, 2, Int16.Kind().FixedSize())
	assert.Equal(t, 8, Uint64.Kind().FixedSize())
	assert.Equal(t, 4, Float32.Kind().FixedSize())
	assert.Equal(t, 64, Array16(Float32).Kind().FixedSize())
	assert.Equal(t, -1, String.Kind().FixedSize())
	assert.Equal(t, -1, SeqOf(Float32).Kind().FixedSize())
	assert.Equal(t, -1, Array2(String).Kind().FixedSize())
}

func TestValueKindMarshalText(t *testing.T) {
	text, err := SeqOf(Array3(Float32)).Kind().MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "[][3]float32", string(text))
}

func TestTupleOfPanicsOnArityMismatch(t *testing.T) {
	assert.Panics(t, func() {
		TupleOf(Float32, 3, func(a *[4]float32) []float32 { return a[:] })
	})
}
