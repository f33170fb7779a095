package staticstruct

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scalars struct {
	B   bool
	I8  int8
	I16 int16
	I32 int32
	I64 int64
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	F32 float32
	F64 float64
	S   string
}

func registerScalars(reg *Registry, s *scalars) {
	Register(reg, "b", &s.B, Bool)
	Register(reg, "i8", &s.I8, Int8)
	Register(reg, "i16", &s.I16, Int16)
	Register(reg, "i32", &s.I32, Int32)
	Register(reg, "i64", &s.I64, Int64)
	Register(reg, "u8", &s.U8, Uint8)
	Register(reg, "u16", &s.U16, Uint16)
	Register(reg, "u32", &s.U32, Uint32)
	Register(reg, "u64", &s.U64, Uint64)
	Register(reg, "f32", &s.F32, Float32)
	Register(reg, "f64", &s.F64, Float64)
	Register(reg, "s", &s.S, String)
}

// scalarSample deposits one value of kind and applies the same change to
// an expected record.
type scalarSample struct {
	kind  Kind
	set   func(Slot) bool
	apply func(*scalars)
}

var scalarSamples = []scalarSample{
	{KindBool, func(s Slot) bool { return SetValue(true, s) }, func(r *scalars) { r.B = true }},
	{KindInt8, func(s Slot) bool { return SetValue(int8(-8), s) }, func(r *scalars) { r.I8 = -8 }},
	{KindInt16, func(s Slot) bool { return SetValue(int16(-16), s) }, func(r *scalars) { r.I16 = -16 }},
	{KindInt32, func(s Slot) bool { return SetValue(int32(-32), s) }, func(r *scalars) { r.I32 = -32 }},
	{KindInt64, func(s Slot) bool { return SetValue(int64(-64), s) }, func(r *scalars) { r.I64 = -64 }},
	{KindUint8, func(s Slot) bool { return SetValue(uint8(8), s) }, func(r *scalars) { r.U8 = 8 }},
	{KindUint16, func(s Slot) bool { return SetValue(uint16(16), s) }, func(r *scalars) { r.U16 = 16 }},
	{KindUint32, func(s Slot) bool { return SetValue(uint32(32), s) }, func(r *scalars) { r.U32 = 32 }},
	{KindUint64, func(s Slot) bool { return SetValue(uint64(64), s) }, func(r *scalars) { r.U64 = 64 }},
	{KindFloat32, func(s Slot) bool { return SetValue(float32(3.5), s) }, func(r *scalars) { r.F32 = 3.5 }},
	{KindFloat64, func(s Slot) bool { return SetValue(6.25, s) }, func(r *scalars) { r.F64 = 6.25 }},
	{KindString, func(s Slot) bool { return SetValue("muda", s) }, func(r *scalars) { r.S = "muda" }},
}

func TestSetValueScalarMatrix(t *testing.T) {
	var probe scalars
	probeReg := NewRegistry()
	registerScalars(probeReg, &probe)

	for i := range probeReg.Len() {
		for _, sample := range scalarSamples {
			var rec scalars
			reg := NewRegistry()
			registerScalars(reg, &rec)
			slot := reg.Entries()[i].Slot

			ok := sample.set(slot)

			var want scalars
			if slot.Kind().Kind == sample.kind {
				require.True(t, ok, "%s should accept %s", slot.Name(), sample.kind)
				sample.apply(&want)
				assert.True(t, slot.Deposited())
				assert.NoError(t, slot.Err())
			} else {
				require.False(t, ok, "%s should reject %s", slot.Name(), sample.kind)
				assert.False(t, slot.Deposited())
				var mismatch *MismatchError
				require.ErrorAs(t, slot.Err(), &mismatch)
				assert.Equal(t, slot.Name(), mismatch.Field)
				assert.Equal(t, sample.kind.String(), mismatch.ActualType)
				assert.True(t, mismatch.Actual.Equal(Scalar(sample.kind)), "actual kind %s", mismatch.Actual)
			}
			assert.Equal(t, want, rec)
		}
	}
}

func TestDepositMismatchError(t *testing.T) {
	var f float32 = 7
	reg := NewRegistry()
	slot := Register(reg, "f", &f, Float32)

	err := Deposit("dora", slot)
	require.ErrorIs(t, err, ErrKindMismatch)
	assert.EqualError(t, err, "type mismatch at field `f`: type `float32` expected but got type `string`")
	assert.Equal(t, float32(7), f)

	// A later accepted value clears the latched rejection.
	require.NoError(t, Deposit(float32(1), slot))
	assert.NoError(t, slot.Err())
	assert.Equal(t, float32(1), f)
}

func TestDepositNilSlot(t *testing.T) {
	assert.ErrorIs(t, Deposit(1, nil), ErrDeclined)
	assert.False(t, SetValue(1, nil))
}

func TestSequenceRejectsWhole(t *testing.T) {
	vf := []float32{9}
	reg := NewRegistry()
	slot := Register(reg, "vf", &vf, SeqOf(Float32))

	assert.False(t, SetValue([][3]float32{{1, 2, 3}}, slot), "element kind differs")
	assert.False(t, SetValue([]float64{1, 2}, slot), "element width differs")
	assert.False(t, SetValue([3]float32{1, 2, 3}, slot), "a tuple is not a sequence")
	assert.Equal(t, []float32{9}, vf)

	var mismatch *MismatchError
	require.ErrorAs(t, slot.Err(), &mismatch)
	assert.Equal(t, "[]float32", mismatch.Expected.String())
	assert.Equal(t, "[3]float32", mismatch.ActualType)
	assert.True(t, mismatch.Actual.Equal(Array3(Float32).Kind()))
	assert.False(t, mismatch.Actual.Equal(mismatch.Expected))
}

func TestTupleRejectsArity(t *testing.T) {
	v := [3]float32{7, 7, 7}
	reg := NewRegistry()
	slot := Register(reg, "v", &v, Array3(Float32))

	assert.False(t, SetValue([2]float32{1, 2}, slot))
	assert.False(t, SetValue([4]float32{1, 2, 3, 4}, slot))
	assert.False(t, SetValue([]float32{1, 2, 3}, slot), "a sequence is not a tuple")
	assert.Equal(t, [3]float32{7, 7, 7}, v)

	assert.True(t, SetValue([3]float32{1, 2, 3}, slot))
	assert.Equal(t, [3]float32{1, 2, 3}, v)
}

func TestAcceptedSequenceIsCopied(t *testing.T) {
	var vf3 [][3]float32
	reg := NewRegistry()
	slot := Register(reg, "vf3", &vf3, SeqOf(Array3(Float32)))

	in := [][3]float32{{1, 2, 3.3}, {4.5, 6.3, 7.4}}
	require.True(t, SetValue(in, slot))
	in[0][0] = 100

	assert.Equal(t, [][3]float32{{1, 2, 3.3}, {4.5, 6.3, 7.4}}, vf3)
}

func TestNestedSequenceCopiedInsideTuple(t *testing.T) {
	var pair [2][]uint8
	reg := NewRegistry()
	slot := Register(reg, "pair", &pair, Array2(SeqOf(Uint8)))

	in := [2][]uint8{{1}, {2, 3}}
	require.True(t, SetValue(in, slot))
	in[1][0] = 9

	assert.Equal(t, [2][]uint8{{1}, {2, 3}}, pair)
}

func TestGetValue(t *testing.T) {
	rec := struct {
		F  float32
		VF []float32
	}{F: 2, VF: []float32{1, 2}}
	reg := NewRegistry()
	fs := Register(reg, "f", &rec.F, Float32)
	vs := Register(reg, "vf", &rec.VF, SeqOf(Float32))

	f, ok := GetValue[float32](fs)
	require.True(t, ok)
	assert.Equal(t, float32(2), f)

	_, ok = GetValue[float64](fs)
	assert.False(t, ok)

	vf, ok := GetValue[[]float32](vs)
	require.True(t, ok)
	vf[0] = 42
	assert.Equal(t, []float32{1, 2}, rec.VF, "GetValue returns a copy")
}

func TestRegisterPanics(t *testing.T) {
	reg := NewRegistry()
	assert.Panics(t, func() { Register[float32](reg, "f", nil, Float32) })
	assert.Panics(t, func() {
		var f float32
		Register(reg, "f", &f, Type[float32]{})
	})
	assert.Panics(t, func() {
		var f float32
		RegisterConverted[float32, float64](reg, "f", &f, nil)
	})
	assert.Zero(t, reg.Len())
}

func TestSlotErrIsNilBeforeUse(t *testing.T) {
	var s string
	slot := Register(NewRegistry(), "s", &s, String)
	assert.Nil(t, slot.Err())
	assert.False(t, errors.Is(slot.Err(), ErrKindMismatch))
	assert.Equal(t, "s", slot.Name())
	assert.Equal(t, "string", slot.Kind().String())
}

func TestMismatchActualKind(t *testing.T) {
	type celsius float32
	var f float32
	slot := Register(NewRegistry(), "f", &f, Float32)

	tests := []struct {
		name     string
		set      func() error
		wantKind ValueKind
		wantType string
	}{
		{"Scalar", func() error { return Deposit(int16(1), slot) }, Int16.Kind(), "int16"},
		{"NestedSequence", func() error { return Deposit([][3]float32{}, slot) }, SeqOf(Array3(Float32)).Kind(), "[][3]float32"},
		{"NamedType", func() error { return Deposit(celsius(1), slot) }, ValueKind{}, "staticstruct.celsius"},
		{"Int", func() error { return Deposit(1, slot) }, ValueKind{}, "int"},
		{"SliceOfUnsupported", func() error { return Deposit([]int{1}, slot) }, ValueKind{}, "[]int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mismatch *MismatchError
			require.ErrorAs(t, tt.set(), &mismatch)
			assert.True(t, mismatch.Actual.Equal(tt.wantKind), "got %s, want %s", mismatch.Actual, tt.wantKind)
			assert.Equal(t, tt.wantType, mismatch.ActualType)
			assert.True(t, mismatch.Expected.Equal(Float32.Kind()))
		})
	}
}
