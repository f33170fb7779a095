package staticstruct

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Type describes how values of the Go type T map onto a ValueKind and how
// they are carried by a Reader and Writer. Types are only built by this
// package, so the set of native shapes stays closed; other Go types enter
// through a Converter.
type Type[T any] struct {
	kind  ValueKind
	write func(w *Writer, v T)
	read  func(r *Reader, v *T)
	size  func(v T) int
	clone func(v T) T   // nil when a plain copy does not alias
	count func(v T) int // element count, sequences only
}

// Kind returns the ValueKind values of T have.
func (t Type[T]) Kind() ValueKind { return t.kind }

func (t Type[T]) String() string { return t.kind.String() }

func (t Type[T]) valid() bool { return t.kind.Kind != KindInvalid && t.write != nil }

func (t Type[T]) cloneValue(v T) T {
	if t.clone == nil {
		return v
	}
	return t.clone(v)
}

func fixedSize[T any](n int) func(T) int {
	return func(T) int { return n }
}

func integer[T constraints.Integer](k Kind) Type[T] {
	width := k.width()
	return Type[T]{
		kind:  Scalar(k),
		write: func(w *Writer, v T) { w.writeUint(uint64(v), width) },
		read: func(r *Reader, v *T) {
			u := r.readUint(width)
			if r.err == nil {
				*v = T(u)
			}
		},
		size: fixedSize[T](width),
	}
}

func floating[T constraints.Float](k Kind) Type[T] {
	width := k.width()
	return Type[T]{
		kind: Scalar(k),
		write: func(w *Writer, v T) {
			if width == 4 {
				w.WriteFloat32(float32(v))
			} else {
				w.WriteFloat64(float64(v))
			}
		},
		read: func(r *Reader, v *T) {
			if width == 4 {
				var f float32
				r.ReadFloat32(&f)
				if r.err == nil {
					*v = T(f)
				}
			} else {
				var f float64
				r.ReadFloat64(&f)
				if r.err == nil {
					*v = T(f)
				}
			}
		},
		size: fixedSize[T](width),
	}
}

// Native scalar types.
var (
	Bool = Type[bool]{
		kind:  Scalar(KindBool),
		write: func(w *Writer, v bool) { w.WriteBool(v) },
		read:  func(r *Reader, v *bool) { r.ReadBool(v) },
		size:  fixedSize[bool](1),
	}

	Int8  = integer[int8](KindInt8)
	Int16 = integer[int16](KindInt16)
	Int32 = integer[int32](KindInt32)
	Int64 = integer[int64](KindInt64)

	Uint8  = integer[uint8](KindUint8)
	Uint16 = integer[uint16](KindUint16)
	Uint32 = integer[uint32](KindUint32)
	Uint64 = integer[uint64](KindUint64)

	Float32 = floating[float32](KindFloat32)
	Float64 = floating[float64](KindFloat64)

	String = Type[string]{
		kind:  Scalar(KindString),
		write: func(w *Writer, v string) { w.WritePrefixedString(v) },
		read:  func(r *Reader, v *string) { r.ReadPrefixedString(v) },
		size:  func(v string) int { return 4 + len(v) },
	}
)

// seqPrealloc is how many elements of kind a decoded sequence reserves
// before any of them has been read. The rest grow as data arrives.
func seqPrealloc(k ValueKind) int {
	size := k.FixedSize()
	if size <= 0 {
		size = 4 // strings and sequences carry at least their count
	}
	return max(1, BUFFER_SIZE/size)
}

// SeqOf returns the Type of a variable-length sequence of elem.
// Accepted sequences are deep-copied into the field.
func SeqOf[E any](elem Type[E]) Type[[]E] {
	return Type[[]E]{
		kind: Sequence(elem.kind),
		write: func(w *Writer, v []E) {
			w.WriteCount(len(v))
			for _, e := range v {
				elem.write(w, e)
			}
		},
		read: func(r *Reader, v *[]E) {
			n := r.ReadCount()
			if r.err != nil {
				return
			}
			var out []E
			if n > 0 {
				out = make([]E, 0, min(n, seqPrealloc(elem.kind)))
			}
			for range n {
				var e E
				elem.read(r, &e)
				if r.err != nil {
					return
				}
				out = append(out, e)
			}
			*v = out
		},
		size: func(v []E) int {
			n := 4
			for _, e := range v {
				n += elem.size(e)
			}
			return n
		},
		clone: func(v []E) []E {
			if v == nil {
				return nil
			}
			out := make([]E, len(v))
			for i, e := range v {
				out[i] = elem.cloneValue(e)
			}
			return out
		},
		count: func(v []E) int { return len(v) },
	}
}

// TupleOf returns the Type of a fixed-arity tuple of n elem values stored
// in the Go type A. view exposes the n elements of an A as a slice backed
// by the A itself; it is normally an array slicing expression.
func TupleOf[A, E any](elem Type[E], n int, view func(*A) []E) Type[A] {
	var probe A
	if got := len(view(&probe)); got != n {
		panic(fmt.Sprintf("staticstruct: tuple view yields %d elements, declared %d", got, n))
	}
	t := Type[A]{
		kind: Tuple(elem.kind, n),
		write: func(w *Writer, v A) {
			for _, e := range view(&v) {
				elem.write(w, e)
			}
		},
		read: func(r *Reader, v *A) {
			var a A
			es := view(&a)
			for i := range es {
				elem.read(r, &es[i])
				if r.err != nil {
					return
				}
			}
			*v = a
		},
		size: func(v A) int {
			s := 0
			for _, e := range view(&v) {
				s += elem.size(e)
			}
			return s
		},
	}
	if elem.clone != nil {
		t.clone = func(v A) A {
			es := view(&v)
			for i := range es {
				es[i] = elem.clone(es[i])
			}
			return v
		}
	}
	return t
}

func Array2[E any](elem Type[E]) Type[[2]E] {
	return TupleOf(elem, 2, func(a *[2]E) []E { return a[:] })
}

func Array3[E any](elem Type[E]) Type[[3]E] {
	return TupleOf(elem, 3, func(a *[3]E) []E { return a[:] })
}

func Array4[E any](elem Type[E]) Type[[4]E] {
	return TupleOf(elem, 4, func(a *[4]E) []E { return a[:] })
}

// Array16 is the shape of a flattened 4x4 matrix.
func Array16[E any](elem Type[E]) Type[[16]E] {
	return TupleOf(elem, 16, func(a *[16]E) []E { return a[:] })
}
