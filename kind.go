package staticstruct

import "strconv"

// Kind is the closed set of shapes the engine carries natively.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindSequence
	KindTuple
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindBool:     "bool",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindString:   "string",
	KindSequence: "sequence",
	KindTuple:    "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown kind>"
}

// width is the encoded size in bytes of a fixed-width scalar kind, or -1.
func (k Kind) width() int {
	switch k {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	}
	return -1
}

// ValueKind identifies the full shape of a value: a scalar kind, or a
// sequence or fixed-arity tuple of some element ValueKind.
type ValueKind struct {
	Kind Kind
	Elem *ValueKind // element shape of a Sequence or Tuple
	Len  int        // arity of a Tuple
}

// Scalar returns the ValueKind of a scalar kind.
func Scalar(k Kind) ValueKind { return ValueKind{Kind: k} }

// Sequence returns the ValueKind of a variable-length sequence of elem.
func Sequence(elem ValueKind) ValueKind {
	return ValueKind{Kind: KindSequence, Elem: &elem}
}

// Tuple returns the ValueKind of an n-element tuple of elem.
func Tuple(elem ValueKind, n int) ValueKind {
	return ValueKind{Kind: KindTuple, Elem: &elem, Len: n}
}

// Equal reports whether two kinds describe the same shape, element kinds
// and arities included.
func (v ValueKind) Equal(o ValueKind) bool {
	if v.Kind != o.Kind || v.Len != o.Len {
		return false
	}
	if v.Elem == nil || o.Elem == nil {
		return v.Elem == o.Elem
	}
	return v.Elem.Equal(*o.Elem)
}

// String renders the kind in Go syntax, e.g. "[][3]float32".
func (v ValueKind) String() string {
	switch v.Kind {
	case KindSequence:
		return "[]" + v.elemString()
	case KindTuple:
		return "[" + strconv.Itoa(v.Len) + "]" + v.elemString()
	}
	return v.Kind.String()
}

func (v ValueKind) elemString() string {
	if v.Elem == nil {
		return KindInvalid.String()
	}
	return v.Elem.String()
}

// FixedSize returns the encoded size in bytes of values of this kind, or -1
// when the size depends on the value (strings and sequences).
func (v ValueKind) FixedSize() int {
	switch v.Kind {
	case KindTuple:
		if v.Elem == nil {
			return -1
		}
		es := v.Elem.FixedSize()
		if es < 0 {
			return -1
		}
		return es * v.Len
	case KindSequence, KindString:
		return -1
	}
	return v.Kind.width()
}

// MarshalText implements encoding.TextMarshaler.
func (v ValueKind) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
