// Package core implements structural type erasure: containers that hold any
// value having a declared set of methods, dispatching through a per-container
// table of trampolines and tagging payload types with descriptors.
package core

import (
	"fmt"
	"reflect"
)

// Container holds any value that has the methods of Kind K, without the
// value's type appearing in the container's type.
//
// Use containers through pointers: a nil *Container and a zero Container are
// both empty. Copying a Container struct would alias its storage, so copies
// go through Clone, Take, Assign and AssignMove; go vet reports accidental
// struct copies.
//
// A container is not safe for concurrent mutation.
type Container[K Definition] struct {
	noCopy NoCopy //nolint:unused // copylocks marker

	storage Storage
	desc    *Descriptor
	table   Table
}

// Emplace constructs a value payload of type T directly in the container's
// storage. Use it for move-only payloads that must not be copied on the way
// in. init receives the zero value and may be nil.
func Emplace[K Definition, T any](init func(*T)) (*Container[K], error) {
	kind, err := KindOf[K]()
	if err != nil {
		return nil, err
	}

	payload := reflect.TypeFor[T]()

	table, err := prepare(kind, payload)
	if err != nil {
		return nil, err
	}

	storage := allocate(payload)

	if init != nil {
		init(storage.ptr.Interface().(*T)) //nolint:forcetypeassert // storage was allocated for T
	}

	if payload.Kind() == reflect.Pointer && storage.Elem().IsNil() {
		return nil, fmt.Errorf("%w: %s", ErrNilPayload, payload)
	}

	return &Container[K]{storage: storage, desc: DescriptorOf(payload), table: table}, nil
}

// MustWrap is Wrap that panics on error.
func MustWrap[K Definition, T any](value T) *Container[K] {
	container, err := Wrap[K](value)
	if err != nil {
		panic(err)
	}

	return container
}

// Result returns out[i] as a T; a nil result yields the zero T.
func Result[T any](out []any, i int) T {
	if out[i] == nil {
		var zero T

		return zero
	}

	return out[i].(T) //nolint:forcetypeassert // results are converted to the declared types
}

// Swap exchanges the contents of a and b. It never allocates. A nil
// container is empty, so swapping it with another empty container does
// nothing; swapping it with a full one panics with ErrNilContainer.
func Swap[K Definition](a, b *Container[K]) {
	if a == nil || b == nil {
		if a.Valid() || b.Valid() {
			panic(fmt.Errorf("%w: swap into nil %T", ErrNilContainer, a))
		}

		return
	}

	a.storage, b.storage = b.storage, a.storage
	a.desc, b.desc = b.desc, a.desc
	a.table, b.table = b.table, a.table
}

// Wrap returns a container holding value. A pointer value gives reference
// semantics: calls reach the pointee, which the container does not own. Any
// other value is copied into the container. An interface-typed value is
// unwrapped to its dynamic type first.
func Wrap[K Definition, T any](value T) (*Container[K], error) {
	kind, err := KindOf[K]()
	if err != nil {
		return nil, err
	}

	payload := reflect.ValueOf(&value).Elem()
	if payload.Kind() == reflect.Interface {
		if payload.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrNilPayload, payload.Type())
		}

		payload = payload.Elem()
	}

	if payload.Kind() == reflect.Pointer && payload.IsNil() {
		return nil, fmt.Errorf("%w: nil %s", ErrNilPayload, payload.Type())
	}

	table, err := prepare(kind, payload.Type())
	if err != nil {
		return nil, err
	}

	storage := allocate(payload.Type())
	storage.Elem().Set(payload)

	return &Container[K]{storage: storage, desc: DescriptorOf(payload.Type()), table: table}, nil
}

// Assign replaces c's contents with a copy of src's. On error c is unchanged.
// A nil c accepts only an empty src and otherwise returns ErrNilContainer.
func (c *Container[K]) Assign(src *Container[K]) error {
	if c == nil && src.Valid() {
		return fmt.Errorf("%w: assign to nil %T", ErrNilContainer, c)
	}

	tmp, err := src.Clone()
	if err != nil {
		return err
	}

	Swap(c, tmp)
	tmp.Reset()

	return nil
}

// AssignMove replaces c's contents with src's, leaving src empty. A nil c
// accepts only an empty src and otherwise panics with ErrNilContainer,
// leaving src untouched.
func (c *Container[K]) AssignMove(src *Container[K]) {
	if c == nil && src.Valid() {
		panic(fmt.Errorf("%w: move into nil %T", ErrNilContainer, c))
	}

	tmp := src.Take()
	Swap(c, tmp)
	tmp.Reset()
}

// Call invokes the named required method with args and returns its results.
// A variadic tail is passed as individual arguments, as in a Go call.
func (c *Container[K]) Call(name string, args ...any) ([]any, error) {
	return c.call(name, args, false)
}

// CallSlice is Call for variadic methods whose tail is already a slice, as
// in f(a, b, rest...).
func (c *Container[K]) CallSlice(name string, args ...any) ([]any, error) {
	return c.call(name, args, true)
}

// Clone returns a container holding a duplicate of c's payload. Reference
// payloads duplicate only the pointer.
func (c *Container[K]) Clone() (*Container[K], error) {
	if !c.Valid() {
		return &Container[K]{}, nil
	}

	storage, err := duplicate(c.desc, c.storage)
	if err != nil {
		return nil, err
	}

	return &Container[K]{storage: storage, desc: c.desc, table: c.table}, nil
}

// Equal reports whether c and other are both empty, or both reference the
// same object. Containers owning their payload are never equal, not even to
// themselves: equality is object identity, and only references expose it.
func (c *Container[K]) Equal(other *Container[K]) bool {
	if !c.Valid() {
		return !other.Valid()
	}

	if !other.Valid() {
		return false
	}

	if c.desc.IsReference() && other.desc.IsReference() {
		return c.storage.Elem().Pointer() == other.storage.Elem().Pointer()
	}

	return false
}

// HoldsType reports whether c holds a payload of type t. Generic helpers
// that only know the type at run time use it in place of Holds.
func (c *Container[K]) HoldsType(t reflect.Type) bool {
	if !c.Valid() || DescriptorOf(t) != c.desc {
		return false
	}

	// All pointers share one descriptor; the pointee type still has to match.
	return !c.desc.IsReference() || c.storage.Type() == t
}

// IsReference reports whether c forwards to an object it does not own.
func (c *Container[K]) IsReference() bool {
	return c.Valid() && c.desc.IsReference()
}

// MustCall is Call that panics with the error. Generated facades use it so
// they can keep the exact signatures of the methods they forward.
func (c *Container[K]) MustCall(name string, args ...any) []any {
	out, err := c.Call(name, args...)
	if err != nil {
		panic(err)
	}

	return out
}

// MustCallSlice is CallSlice that panics with the error.
func (c *Container[K]) MustCallSlice(name string, args ...any) []any {
	out, err := c.CallSlice(name, args...)
	if err != nil {
		panic(err)
	}

	return out
}

// NotEqual is !Equal.
func (c *Container[K]) NotEqual(other *Container[K]) bool {
	return !c.Equal(other)
}

// Reset destroys the payload and leaves c empty.
func (c *Container[K]) Reset() {
	if !c.Valid() {
		return
	}

	c.desc.Finalize(c.storage)
	c.storage, c.desc, c.table = Storage{}, nil, nil
}

// String describes the container without revealing the payload type.
func (c *Container[K]) String() string {
	state := "value"

	switch {
	case !c.Valid():
		state = "empty"
	case c.desc.IsReference():
		state = "reference"
	}

	return fmt.Sprintf("Container[%s](%s)", reflect.TypeFor[K](), state)
}

// Take moves c's contents into a new container, leaving c empty.
func (c *Container[K]) Take() *Container[K] {
	out := &Container[K]{}

	if c != nil {
		Swap(out, c)
	}

	return out
}

// Valid reports whether c holds a payload.
func (c *Container[K]) Valid() bool {
	return c != nil && !c.storage.IsZero()
}

func (c *Container[K]) call(name string, args []any, slice bool) ([]any, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: call %s on %s", ErrEmpty, name, c)
	}

	kind, err := KindOf[K]()
	if err != nil {
		return nil, err
	}

	slot, ok := kind.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %q", ErrUnknownMethod, kind.Name(), name)
	}

	in, err := packArgs(kind.methods[slot], args, slice)
	if err != nil {
		return nil, err
	}

	out := c.table[slot](c.storage, in)
	if out == nil {
		return nil, nil
	}

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	return results, nil
}

// argValue converts one dynamic argument to parameter type t. Untyped nil
// becomes the zero value of nillable types; numbers convert between numeric
// kinds as in an implicit C-style conversion; anything else must be
// assignable.
func argValue(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if nillable(t) {
			return reflect.Zero(t), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrBadArguments, t)
	}

	v := reflect.ValueOf(arg)

	if v.Type().AssignableTo(t) {
		return assignTo(v, t), nil
	}

	if numeric(v.Kind()) && numeric(t.Kind()) {
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrBadArguments, v.Type(), t)
}

// duplicate copies a payload into fresh storage of the same type.
func duplicate(desc *Descriptor, src Storage) (Storage, error) {
	dst := allocate(src.Type())

	err := desc.Duplicate(dst, src)
	if err != nil {
		return Storage{}, err
	}

	return dst, nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() { //nolint:exhaustive // only nillable kinds matter
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func numeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

// packArgs converts args to the method's parameter types. Unless slice is
// set, a variadic method's trailing arguments are packed into its slice.
func packArgs(method RequiredMethod, args []any, slice bool) ([]reflect.Value, error) {
	sig := method.Signature
	count := sig.NumIn()

	if !sig.IsVariadic() || slice {
		if len(args) != count {
			return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrBadArguments, method, count, len(args))
		}

		return convertArgs(method, args, count)
	}

	fixed := count - 1
	if len(args) < fixed {
		return nil, fmt.Errorf("%w: %s takes at least %d arguments, got %d", ErrBadArguments, method, fixed, len(args))
	}

	in, err := convertArgs(method, args[:fixed], fixed)
	if err != nil {
		return nil, err
	}

	tailType := sig.In(fixed)
	tail := reflect.MakeSlice(tailType, len(args)-fixed, len(args)-fixed)

	for i, arg := range args[fixed:] {
		v, err := argValue(arg, tailType.Elem())
		if err != nil {
			return nil, fmt.Errorf("%s: variadic argument %d: %w", method.Name, i, err)
		}

		tail.Index(i).Set(v)
	}

	return append(in, tail), nil
}

func convertArgs(method RequiredMethod, args []any, count int) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, count+1)

	for i, arg := range args {
		v, err := argValue(arg, method.Signature.In(i))
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", method.Name, i, err)
		}

		in = append(in, v)
	}

	return in, nil
}

// prepare runs every construction-time check and builds the table.
func prepare(kind *Kind, payload reflect.Type) (Table, error) {
	err := checkPayload(payload)
	if err != nil {
		return nil, err
	}

	return buildTable(kind, payload)
}
