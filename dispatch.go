package staticstruct

import (
	"fmt"
	"reflect"
)

// SetValue deposits v into slot if the slot accepts values of type V and
// reports whether it did. A rejected value leaves the field untouched and
// is recorded as the slot's Err.
func SetValue[V any](v V, slot Slot) bool {
	return Deposit(v, slot) == nil
}

// Deposit is SetValue returning the reason a value was rejected: a
// *MismatchError when V is not the slot's type, or a *ConversionError when
// the slot's converter refused it.
func Deposit[V any](v V, slot Slot) error {
	if slot == nil {
		return ErrDeclined
	}
	a, ok := slot.(Acceptor[V])
	if !ok {
		return slot.state().reject(&MismatchError{
			Field:      slot.Name(),
			Expected:   slot.Kind(),
			Actual:     kindOf(reflect.TypeFor[V]()),
			ActualType: fmt.Sprintf("%T", v),
		})
	}
	return a.Accept(v)
}

// GetValue returns the current value of the slot's field as a V, through
// the converter for converted slots. ok is false when the slot does not
// carry values of type V.
func GetValue[V any](slot Slot) (v V, ok bool) {
	p, ok := slot.(Provider[V])
	if !ok {
		return v, false
	}
	return p.Value(), true
}

var nativeKinds = map[reflect.Kind]Kind{
	reflect.Bool:    KindBool,
	reflect.Int8:    KindInt8,
	reflect.Int16:   KindInt16,
	reflect.Int32:   KindInt32,
	reflect.Int64:   KindInt64,
	reflect.Uint8:   KindUint8,
	reflect.Uint16:  KindUint16,
	reflect.Uint32:  KindUint32,
	reflect.Uint64:  KindUint64,
	reflect.Float32: KindFloat32,
	reflect.Float64: KindFloat64,
	reflect.String:  KindString,
}

// kindOf describes a rejected value's type as a ValueKind. Named types
// have no native kind even when their underlying type does; they enter
// through a Converter. Only called on the rejection path.
func kindOf(t reflect.Type) ValueKind {
	if t == nil || t.PkgPath() != "" {
		return ValueKind{}
	}
	switch t.Kind() {
	case reflect.Slice:
		if elem := kindOf(t.Elem()); elem.Kind != KindInvalid {
			return Sequence(elem)
		}
		return ValueKind{}
	case reflect.Array:
		if elem := kindOf(t.Elem()); elem.Kind != KindInvalid {
			return Tuple(elem, t.Len())
		}
		return ValueKind{}
	}
	if k, ok := nativeKinds[t.Kind()]; ok {
		return Scalar(k)
	}
	return ValueKind{}
}
