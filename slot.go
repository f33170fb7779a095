package staticstruct

// Slot is a type-erased handle on one registered field. It accepts exactly
// one value type: the field's own Go type, or the shadow type of its
// Converter. The interface is sealed; slots are created by Register and
// RegisterConverted only.
type Slot interface {
	// Name is the name the field was registered under.
	Name() string
	// Kind is the ValueKind the slot accepts.
	Kind() ValueKind
	// Deposited reports whether a value was accepted since the last reset.
	Deposited() bool
	// Err returns the error of the most recent rejected value, cleared by
	// the next accepted one.
	Err() error

	state() *slotState
	encode(w *Writer)
	decode(r *Reader) error
	skip(r *Reader) error
	size() int
}

// Acceptor is implemented by the slots that accept values of type V.
type Acceptor[V any] interface {
	Slot
	Accept(v V) error
}

// Provider is implemented by the slots that expose their field as a V.
type Provider[V any] interface {
	Slot
	Value() V
}

type slotState struct {
	name string
	kind ValueKind
	set  bool
	err  error
}

func (s *slotState) Name() string      { return s.name }
func (s *slotState) Kind() ValueKind   { return s.kind }
func (s *slotState) Deposited() bool   { return s.set }
func (s *slotState) Err() error        { return s.err }
func (s *slotState) state() *slotState { return s }

func (s *slotState) reset() {
	s.set = false
	s.err = nil
}

func (s *slotState) deposited() {
	s.set = true
	s.err = nil
}

func (s *slotState) reject(err error) error {
	s.err = err
	return err
}

// field binds a native Type to a pointer into the caller's record.
type field[T any] struct {
	slotState
	ptr *T
	typ Type[T]
}

var (
	_ Acceptor[float32]   = (*field[float32])(nil)
	_ Provider[[]float32] = (*field[[]float32])(nil)
)

// Accept overwrites the field with v.
func (f *field[T]) Accept(v T) error {
	*f.ptr = f.typ.cloneValue(v)
	f.deposited()
	return nil
}

// Value returns a copy of the field's current value.
func (f *field[T]) Value() T { return f.typ.cloneValue(*f.ptr) }

func (f *field[T]) encode(w *Writer) { f.typ.write(w, *f.ptr) }
func (f *field[T]) size() int        { return f.typ.size(*f.ptr) }

func (f *field[T]) decode(r *Reader) error {
	var v T
	f.typ.read(r, &v)
	if r.err != nil {
		return r.err
	}
	return f.Accept(v)
}

func (f *field[T]) skip(r *Reader) error {
	var v T
	f.typ.read(r, &v)
	return r.err
}

// convField binds a host type T carried through the shadow type S.
type convField[T, S any] struct {
	slotState
	ptr  *T
	conv *Converter[T, S]
}

// Accept converts s and overwrites the field. A rejected conversion leaves
// the field untouched.
func (f *convField[T, S]) Accept(s S) error {
	v, err := f.conv.FromShadow(f.conv.shadow.cloneValue(s))
	if err != nil {
		return f.reject(&ConversionError{Field: f.name, Shadow: f.kind, Err: err})
	}
	*f.ptr = v
	f.deposited()
	return nil
}

// Value returns the shadow of the field's current value.
func (f *convField[T, S]) Value() S { return f.conv.ToShadow(*f.ptr) }

func (f *convField[T, S]) encode(w *Writer) { f.conv.shadow.write(w, f.Value()) }
func (f *convField[T, S]) size() int        { return f.conv.shadow.size(f.Value()) }

func (f *convField[T, S]) decode(r *Reader) error {
	var s S
	f.conv.shadow.read(r, &s)
	if r.err != nil {
		return r.err
	}
	return f.Accept(s)
}

func (f *convField[T, S]) skip(r *Reader) error {
	var s S
	f.conv.shadow.read(r, &s)
	return r.err
}
