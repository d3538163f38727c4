package core

import (
	"fmt"
	"reflect"
	"sync"
)

// MaxAlign is the alignment every heap allocation is guaranteed to have:
// Go's allocator rounds all size classes to multiples of 8 bytes. That covers
// complex128 and every other Go type on the platforms Go supports today, so
// ErrOveraligned only guards against a future platform with stricter types.
const MaxAlign = 8

// Capability says which lifecycle operations a Descriptor supports.
type Capability int

// Capability values.
const (
	// Copyable payloads can be duplicated and relocated.
	Copyable Capability = iota
	// MoveOnly payloads can be relocated but never duplicated.
	MoveOnly
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case Copyable:
		return "copyable"
	case MoveOnly:
		return "move-only"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Cloner is implemented by payloads that need a deep copy when a container
// holding them is duplicated. Clone must return an independent value.
type Cloner[T any] interface {
	Clone() T
}

// Descriptor is the per-payload-type record of lifecycle operations. Its
// identity is the run-time type tag: two containers hold the same payload
// type iff their descriptors are the same pointer. All pointer payloads share
// ReferenceDescriptor.
type Descriptor struct {
	name       string
	size       uintptr
	capability Capability
	reference  bool
	duplicate  func(dst, src Storage)
	relocate   func(dst, src Storage)
	finalize   func(p Storage)
}

// DescriptorFor returns the descriptor of T.
func DescriptorFor[T any]() *Descriptor {
	return DescriptorOf(reflect.TypeFor[T]())
}

// DescriptorOf returns the descriptor of payload type t. The same t always
// yields the same pointer; every pointer type yields ReferenceDescriptor.
func DescriptorOf(t reflect.Type) *Descriptor {
	if t.Kind() == reflect.Pointer {
		return ReferenceDescriptor()
	}

	if cached, ok := descriptors.Load(t); ok {
		return cached.(*Descriptor) //nolint:forcetypeassert // only descriptors are stored
	}

	desc, _ := descriptors.LoadOrStore(t, newValueDescriptor(t))

	return desc.(*Descriptor) //nolint:forcetypeassert // only descriptors are stored
}

// ReferenceDescriptor is the one descriptor shared by every pointer payload.
func ReferenceDescriptor() *Descriptor {
	return referenceDescriptor
}

// Capability returns whether the payload may be duplicated.
func (d *Descriptor) Capability() Capability {
	return d.capability
}

// Duplicate constructs a copy of src in dst.
func (d *Descriptor) Duplicate(dst, src Storage) error {
	if d.duplicate == nil {
		return fmt.Errorf("%w: %s", ErrNotCopyable, d.name)
	}

	d.duplicate(dst, src)

	return nil
}

// Finalize destroys the payload at p.
func (d *Descriptor) Finalize(p Storage) {
	d.finalize(p)
}

// IsReference reports whether this is the shared pointer-payload descriptor.
func (d *Descriptor) IsReference() bool {
	return d.reference
}

// Name returns the payload type name, or "reference" for pointer payloads.
func (d *Descriptor) Name() string {
	return d.name
}

// Relocate constructs dst by consuming src; src is left zeroed.
func (d *Descriptor) Relocate(dst, src Storage) {
	d.relocate(dst, src)
}

// Size returns the byte size of the payload.
func (d *Descriptor) Size() uintptr {
	return d.size
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%d bytes, %s)", d.name, d.size, d.capability)
}

// Finalizer is implemented by payloads that release resources when the
// container owning them is reset.
type Finalizer interface {
	Finalize()
}

// checkPayload rejects payload types a container can never hold. No current
// platform has a type that fails it.
func checkPayload(t reflect.Type) error {
	if t.Align() > MaxAlign {
		return fmt.Errorf("%w: %s aligns to %d", ErrOveraligned, t, t.Align())
	}

	return nil
}

// cloneMethod finds a Clone() T method on t or *t.
func cloneMethod(t reflect.Type) (reflect.Method, bool) {
	method, ok := reflect.PointerTo(t).MethodByName("Clone")
	if !ok {
		return reflect.Method{}, false
	}

	// Method.Type includes the receiver.
	if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 || method.Type.Out(0) != t {
		return reflect.Method{}, false
	}

	return method, true
}

func moveValue(dst, src Storage) {
	dst.Elem().Set(src.Elem())
	src.Elem().SetZero()
}

func newReferenceDescriptor() *Descriptor {
	return &Descriptor{
		name:       "reference",
		size:       reflect.TypeFor[*byte]().Size(),
		capability: Copyable,
		reference:  true,
		duplicate: func(dst, src Storage) {
			dst.Elem().Set(src.Elem())
		},
		relocate: moveValue,
		finalize: func(p Storage) {
			// The pointee is not owned; only drop the pointer.
			p.Elem().SetZero()
		},
	}
}

func newValueDescriptor(t reflect.Type) *Descriptor {
	desc := &Descriptor{
		name:       t.String(),
		size:       t.Size(),
		capability: Copyable,
		relocate:   moveValue,
		finalize: func(p Storage) {
			if finalizer, ok := p.ptr.Interface().(Finalizer); ok {
				finalizer.Finalize()
			}

			p.Elem().SetZero()
		},
	}

	if lockPath(t) != "" {
		desc.capability = MoveOnly

		return desc
	}

	if clone, ok := cloneMethod(t); ok {
		desc.duplicate = func(dst, src Storage) {
			dst.Elem().Set(clone.Func.Call([]reflect.Value{src.ptr})[0])
		}

		return desc
	}

	desc.duplicate = func(dst, src Storage) {
		dst.Elem().Set(src.Elem())
	}

	return desc
}

// unexported variables.
var (
	//nolint:gochecknoglobals // descriptor identity is process-wide
	descriptors sync.Map // reflect.Type -> *Descriptor
	//nolint:gochecknoglobals // the one shared pointer-payload descriptor
	referenceDescriptor = newReferenceDescriptor()
)
