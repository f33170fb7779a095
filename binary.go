package staticstruct

import "io"

// Statically ensure that Registry implements Codec.
var _ Codec = (*Registry)(nil)

// Size returns the encoded size of the registered fields' current values.
func (r *Registry) Size() int {
	n := 0
	for _, e := range r.entries {
		if e.Flags.Has(IgnoreWrite) {
			continue
		}
		if e.Flags.Has(Optional) {
			n++ // presence byte
		}
		n += e.Slot.size()
	}
	return n
}

// WriteTo encodes every field in registration order. Optional fields are
// preceded by a presence byte. IgnoreWrite fields are left out.
func (r *Registry) WriteTo(writer io.Writer) (int64, error) {
	w, err := NewWriter(writer)
	if err != nil {
		return 0, err
	}
	for _, e := range r.entries {
		if e.Flags.Has(IgnoreWrite) {
			continue
		}
		if e.Flags.Has(Optional) {
			w.WriteBool(true)
		}
		e.Slot.encode(w)
	}
	return w.Result()
}

// ReadFrom decodes fields in registration order. Every decoded value goes
// through the slot's Accept, so the same checks apply as for any resolver.
// IgnoreRead fields are decoded and discarded; IgnoreWrite fields are not
// in the encoding and keep their values.
func (r *Registry) ReadFrom(reader io.Reader) (int64, error) {
	br, err := NewReader(reader)
	if err != nil {
		return 0, err
	}
	if err := Walk(r.encoded(), BinaryResolver(br)); err != nil {
		return br.Count(), err
	}
	return br.Result()
}

// encoded returns r itself, or a view of it without its IgnoreWrite entries.
func (r *Registry) encoded() *Registry {
	if r == nil {
		return nil
	}
	for i, e := range r.entries {
		if !e.Flags.Has(IgnoreWrite) {
			continue
		}
		view := &Registry{entries: append([]Entry(nil), r.entries[:i]...)}
		for _, e := range r.entries[i+1:] {
			if !e.Flags.Has(IgnoreWrite) {
				view.entries = append(view.entries, e)
			}
		}
		return view
	}
	return r
}

func (r *Registry) MarshalBinary() ([]byte, error) {
	return MarshalBinaryGeneric(r)
}

func (r *Registry) MarshalTo(buf []byte) (int, error) {
	return MarshalToGeneric(r, buf)
}

func (r *Registry) UnmarshalBinary(data []byte) error {
	return UnmarshalBinaryGeneric(r, data)
}

// BinaryResolver resolves each field from the next value encoded in r, in
// the layout Registry.WriteTo produces. It is also a Skipper, so IgnoreRead
// fields are consumed without being stored.
//
// An Optional field whose presence byte is zero is declined, as is any
// IgnoreWrite field, which has no value in the stream. Any other failure,
// including a value its slot rejects, aborts the walk.
func BinaryResolver(r *Reader) Resolver {
	return &binaryResolver{r: r}
}

type binaryResolver struct {
	r *Reader
}

var _ Skipper = (*binaryResolver)(nil)

func (b *binaryResolver) Resolve(_ string, flags Flags, slot Slot) error {
	present, err := b.present(flags)
	if err != nil {
		return Abort(err)
	}
	if !present {
		return ErrDeclined
	}
	return Abort(slot.decode(b.r))
}

func (b *binaryResolver) Skip(_ string, flags Flags, slot Slot) error {
	present, err := b.present(flags)
	if err != nil || !present {
		return err
	}
	return slot.skip(b.r)
}

// present reports whether a value for a field with flags follows in the
// stream.
func (b *binaryResolver) present(flags Flags) (bool, error) {
	if flags.Has(IgnoreWrite) {
		return false, nil
	}
	if !flags.Has(Optional) {
		return true, nil
	}
	var p bool
	b.r.ReadBool(&p)
	if err := b.r.Err(); err != nil {
		return false, err
	}
	return p, nil
}
