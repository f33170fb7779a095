package staticstruct

import "iter"

// Flags modify how the Driver treats a registered field.
type Flags uint32

const (
	// Optional fields may be left unresolved without failing a walk.
	Optional Flags = 1 << iota
	// IgnoreRead fields are passed over by Walk; the resolver never sees them.
	IgnoreRead
	// IgnoreWrite fields are left out of the binary encoding.
	IgnoreWrite
)

// Has reports whether all bits of o are set in f.
func (f Flags) Has(o Flags) bool { return f&o == o }

func (f Flags) String() string {
	s := "required"
	if f.Has(Optional) {
		s = "optional"
	}
	if f.Has(IgnoreRead) {
		s += "|ignore-read"
	}
	if f.Has(IgnoreWrite) {
		s += "|ignore-write"
	}
	return s
}

// Entry is one registered field.
type Entry struct {
	Name  string
	Flags Flags
	Slot  Slot
}

// Registry is an ordered list of named fields. Iteration order is
// registration order. Duplicate names and aliased fields are allowed; the
// registry only ever aliases the caller's storage, it never copies it.
//
// The zero value is an empty registry ready to use.
type Registry struct {
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func joinFlags(flags []Flags) Flags {
	var f Flags
	for _, o := range flags {
		f |= o
	}
	return f
}

// Register binds ptr to typ under name and appends it to reg. The returned
// slot accepts only values of type T.
func Register[T any](reg *Registry, name string, ptr *T, typ Type[T], flags ...Flags) Slot {
	if ptr == nil {
		panic("staticstruct: Register called with a nil pointer for field " + name)
	}
	if !typ.valid() {
		panic("staticstruct: Register called with a Type not built by this package for field " + name)
	}
	f := &field[T]{slotState: slotState{name: name, kind: typ.kind}, ptr: ptr, typ: typ}
	reg.entries = append(reg.entries, Entry{Name: name, Flags: joinFlags(flags), Slot: f})
	return f
}

// RegisterConverted binds ptr through conv under name and appends it to
// reg. The returned slot accepts only values of the shadow type S.
func RegisterConverted[T, S any](reg *Registry, name string, ptr *T, conv *Converter[T, S], flags ...Flags) Slot {
	if ptr == nil {
		panic("staticstruct: RegisterConverted called with a nil pointer for field " + name)
	}
	if conv == nil {
		panic("staticstruct: RegisterConverted called with a nil converter for field " + name)
	}
	f := &convField[T, S]{slotState: slotState{name: name, kind: conv.shadow.kind}, ptr: ptr, conv: conv}
	reg.entries = append(reg.entries, Entry{Name: name, Flags: joinFlags(flags), Slot: f})
	return f
}

// Len returns the number of registered fields.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns a copy of the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// All yields every entry's name and slot in registration order.
func (r *Registry) All() iter.Seq2[string, Slot] {
	return func(yield func(string, Slot) bool) {
		for _, e := range r.entries {
			if !yield(e.Name, e.Slot) {
				return
			}
		}
	}
}

// Lookup returns the first entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Reset clears the per-walk state of every slot.
func (r *Registry) Reset() {
	for _, e := range r.entries {
		e.Slot.state().reset()
	}
}
