package staticstruct

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// ErrInvalidConverter indicates a converter built with missing functions or
// options that do not fit its shadow type.
var ErrInvalidConverter = errors.New("staticstruct: invalid converter")

// hostSizeCache avoids calling `binary.Size` again for every converter of
// the same host type. It is only consulted while converters are built.
var hostSizeCache = xsync.NewMap[reflect.Type, int]()

// hostSize returns the fixed binary size of T, or -1 when T contains
// variable-size fields.
func hostSize[T any]() int {
	t := reflect.TypeFor[T]()
	if size, ok := hostSizeCache.Load(t); ok {
		return size
	}
	var zero T
	size := binary.Size(&zero)
	hostSizeCache.Store(t, size)
	return size
}

// Converter carries an extension type T across the marshalling boundary
// through a native shadow type S.
//
// ToShadow must be total and FromShadow must undo it: for every legal x,
// FromShadow(ToShadow(x)) equals x.
type Converter[T, S any] struct {
	shadow    Type[S]
	to        func(T) S
	from      func(S) (T, error)
	shadowLen int
}

type converterOptions struct {
	shadowLen int
}

// ConverterOption configures NewConverter.
type ConverterOption func(*converterOptions)

// WithShadowLen declares that shadow sequences always hold exactly n
// elements. The converter then checks the layout against T when it is
// built and rejects shadows of any other length.
func WithShadowLen(n int) ConverterOption {
	return func(o *converterOptions) { o.shadowLen = n }
}

// NewConverter validates and returns a converter. Shadows with a fixed
// layout (tuples, and sequences declared with WithShadowLen) must occupy as
// many bytes as the fixed binary layout of T.
func NewConverter[T, S any](shadow Type[S], to func(T) S, from func(S) (T, error), opts ...ConverterOption) (*Converter[T, S], error) {
	if to == nil || from == nil {
		return nil, fmt.Errorf("%w: nil conversion function", ErrInvalidConverter)
	}
	if !shadow.valid() {
		return nil, fmt.Errorf("%w: shadow type was not built by this package", ErrInvalidConverter)
	}

	var o converterOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.shadowLen < 0 || (o.shadowLen > 0 && shadow.kind.Kind != KindSequence) {
		return nil, fmt.Errorf("%w: shadow length %d does not apply to `%s`", ErrInvalidConverter, o.shadowLen, shadow.kind)
	}

	if want := shadowLayout(shadow.kind, o.shadowLen); want >= 0 {
		if have := hostSize[T](); have != want {
			return nil, fmt.Errorf("%w: shadow `%s` occupies %d bytes, host type %d", ErrLayoutMismatch, shadow.kind, want, have)
		}
	}

	return &Converter[T, S]{shadow: shadow, to: to, from: from, shadowLen: o.shadowLen}, nil
}

// MustConverter is like NewConverter but panics on error. It suits
// package-level converter variables.
func MustConverter[T, S any](shadow Type[S], to func(T) S, from func(S) (T, error), opts ...ConverterOption) *Converter[T, S] {
	c, err := NewConverter(shadow, to, from, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// shadowLayout returns the byte size a shadow reinterprets, or -1 when the
// shadow is a value conversion rather than a layout one.
func shadowLayout(k ValueKind, n int) int {
	switch k.Kind {
	case KindTuple:
		return k.FixedSize()
	case KindSequence:
		if n > 0 && k.Elem != nil {
			if es := k.Elem.FixedSize(); es >= 0 {
				return es * n
			}
		}
	}
	return -1
}

// Shadow returns the shadow Type.
func (c *Converter[T, S]) Shadow() Type[S] { return c.shadow }

// ToShadow converts a host value to its shadow.
func (c *Converter[T, S]) ToShadow(v T) S { return c.to(v) }

// FromShadow converts a shadow value back to the host type.
func (c *Converter[T, S]) FromShadow(s S) (T, error) {
	if c.shadowLen > 0 {
		if n := c.shadow.count(s); n != c.shadowLen {
			var zero T
			return zero, fmt.Errorf("%w: got %d elements, want %d", ErrShadowLength, n, c.shadowLen)
		}
	}
	return c.from(s)
}

// FixedConverter returns a converter for any fixed-layout type T, shadowed
// by its big-endian binary encoding as a byte sequence.
func FixedConverter[T any]() (*Converter[T, []uint8], error) {
	size := hostSize[T]()
	if size < 0 {
		return nil, fmt.Errorf("%w: %s has no fixed binary layout", ErrLayoutMismatch, reflect.TypeFor[T]())
	}
	to := func(v T) []uint8 {
		buf := make([]uint8, size)
		_, _ = binary.Encode(buf, Order, &v)
		return buf
	}
	from := func(b []uint8) (T, error) {
		var v T
		if _, err := binary.Decode(b, Order, &v); err != nil {
			return v, err
		}
		return v, nil
	}
	return NewConverter(SeqOf(Uint8), to, from, WithShadowLen(size))
}
