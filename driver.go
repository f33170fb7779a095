package staticstruct

import (
	"errors"
	"fmt"
	"log/slog"
)

// Resolver decides the value of each field during a walk. It deposits a
// value into slot (see SetValue) and returns nil, or declines by returning
// an error. Returning ErrDeclined declines without a more specific cause.
type Resolver interface {
	Resolve(name string, flags Flags, slot Slot) error
}

// ResolverFunc adapts an ordinary function to a Resolver.
type ResolverFunc func(name string, flags Flags, slot Slot) error

func (f ResolverFunc) Resolve(name string, flags Flags, slot Slot) error {
	return f(name, flags, slot)
}

// BoolResolverFunc adapts a callback that reports success as a bool.
// Returning false declines the field.
type BoolResolverFunc func(name string, flags Flags, slot Slot) bool

func (f BoolResolverFunc) Resolve(name string, flags Flags, slot Slot) error {
	if f(name, flags, slot) {
		return nil
	}
	return ErrDeclined
}

// Skipper is implemented by resolvers that still have to consume the input
// of a field marked IgnoreRead, such as the one BinaryResolver returns.
type Skipper interface {
	Skip(name string, flags Flags, slot Slot) error
}

// Abort marks err as fatal to the walk, even for an Optional field.
func Abort(err error) error {
	if err == nil {
		return nil
	}
	return &abortError{err: err}
}

type abortError struct{ err error }

func (e *abortError) Error() string { return e.err.Error() }
func (e *abortError) Unwrap() error { return e.err }

// Driver walks a Registry, resolving each field in registration order.
type Driver struct {
	logger *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger unresolved fields are reported to.
// If logger is nil, slog.Default() will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// NewDriver returns a Driver configured by opts.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Walk resolves every field of reg with res, one at a time and in
// registration order.
//
// A field is resolved when res returns nil and a value was accepted by its
// slot. An unresolved Optional field keeps its previous value and the walk
// goes on, unless res wrapped its error with Abort. An unresolved required
// field stops the walk: fields before it keep what they were given, fields
// after it are not visited, and the returned *FieldError names the field
// and the first cause found among the slot's rejection, the resolver's
// error and ErrUnhandledField.
//
// Fields marked IgnoreRead are not resolved. If res is a Skipper, its Skip
// is called for them instead and an error from it stops the walk.
func (d *Driver) Walk(reg *Registry, res Resolver) error {
	if reg == nil {
		return ErrNilRegistry
	}
	for _, e := range reg.entries {
		st := e.Slot.state()
		st.reset()

		if e.Flags.Has(IgnoreRead) {
			sk, ok := res.(Skipper)
			if !ok {
				continue
			}
			if err := sk.Skip(e.Name, e.Flags, e.Slot); err != nil {
				return d.abort(e, err)
			}
			continue
		}

		var err error
		if res != nil {
			err = res.Resolve(e.Name, e.Flags, e.Slot)
		}
		if err == nil && st.err == nil && st.set {
			continue
		}
		var abort *abortError
		fatal := errors.As(err, &abort)
		if fatal {
			err = abort.err
		}
		err = cause(st, err)

		if e.Flags.Has(Optional) && !fatal {
			d.logger.Debug("optional field left unset", "field", e.Name, "kind", e.Slot.Kind(), "error", err)
			continue
		}
		return d.abort(e, err)
	}
	return nil
}

func (d *Driver) abort(e Entry, err error) error {
	d.logger.Debug("walk aborted", "field", e.Name, "kind", e.Slot.Kind(), "error", err)
	return &FieldError{Field: e.Name, Kind: e.Slot.Kind(), Err: err}
}

// cause picks the most specific reason a field went unresolved.
func cause(st *slotState, err error) error {
	switch {
	case st.err != nil:
		return st.err
	case err != nil && !errors.Is(err, ErrDeclined):
		return err
	case err != nil:
		return fmt.Errorf("%w: %w", ErrUnhandledField, err)
	}
	return ErrUnhandledField
}

// Walk resolves reg with a Driver using the default logger.
func Walk(reg *Registry, res Resolver) error {
	return NewDriver().Walk(reg, res)
}

// ParseStruct walks reg with fn and reports success. On failure the
// diagnostic is stored in errMsg; on success errMsg is set to "".
func ParseStruct(reg *Registry, fn BoolResolverFunc, errMsg *string) bool {
	var res Resolver
	if fn != nil {
		res = fn
	}
	err := Walk(reg, res)
	if errMsg != nil {
		*errMsg = ""
		if err != nil {
			*errMsg = err.Error()
		}
	}
	return err == nil
}
