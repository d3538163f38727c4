// Package iface holds any value that has a declared set of methods as one
// concrete value, without the held type appearing in the holder's type.
//
// A Kind is declared by a Definition:
//
//	type Speaker struct{}
//
//	func (Speaker) Methods() []iface.RequiredMethod {
//		return []iface.RequiredMethod{iface.Method[func() string]("Speak")}
//	}
//
// Any value with a compatible Speak method can then be wrapped and called:
//
//	box, err := iface.Wrap[Speaker](Dog{Name: "Rex"})
//	out, err := box.Call("Speak") // []any{"Rex says woof"}
//
// Wrapping a pointer gives reference semantics (calls reach the live object);
// wrapping anything else stores an independent copy. The kindgen tool emits
// Definitions and typed facades from ordinary Go interface declarations.
//
// This is the public API entry point. Implementation lives in internal/core.
package iface

import (
	"github.com/toejough/iface/internal/core"
)

// Constants re-exported from internal/core.
const (
	// MaxAlign is the largest payload alignment a container accepts.
	MaxAlign = core.MaxAlign
	// MaxMethods bounds the number of methods in a Kind.
	MaxMethods = core.MaxMethods
)

// Capability values re-exported from internal/core.
const (
	Copyable = core.Copyable
	MoveOnly = core.MoveOnly
)

// Errors re-exported from internal/core.
var (
	ErrBadArguments       = core.ErrBadArguments
	ErrDefinition         = core.ErrDefinition
	ErrDuplicateMethod    = core.ErrDuplicateMethod
	ErrEmpty              = core.ErrEmpty
	ErrNilContainer       = core.ErrNilContainer
	ErrNilPayload         = core.ErrNilPayload
	ErrNoMethods          = core.ErrNoMethods
	ErrNotCopyable        = core.ErrNotCopyable
	ErrNotFound           = core.ErrNotFound
	ErrNotFunc            = core.ErrNotFunc
	ErrOveraligned        = core.ErrOveraligned
	ErrStructuralMismatch = core.ErrStructuralMismatch
	ErrTooManyMethods     = core.ErrTooManyMethods
	ErrUnexportedMethod   = core.ErrUnexportedMethod
	ErrUnknownMethod      = core.ErrUnknownMethod
)

// Capability says whether a payload type may be duplicated.
type Capability = core.Capability

// Cloner is implemented by payloads that need a deep copy on duplication.
type Cloner[T any] = core.Cloner[T]

// Container holds any value with the methods of Kind K.
type Container[K Definition] = core.Container[K]

// Definition declares a Kind by listing its required methods in order.
type Definition = core.Definition

// Descriptor is the per-payload-type lifecycle record and type tag.
type Descriptor = core.Descriptor

// Finalizer is implemented by payloads that release resources on Reset.
type Finalizer = core.Finalizer

// Kind is a validated, ordered method set.
type Kind = core.Kind

// NoCopy marks a struct as move-only when added as a named field.
type NoCopy = core.NoCopy

// RequiredMethod names one method a Kind requires, with its signature.
type RequiredMethod = core.RequiredMethod

// Convert builds a container of Kind To from a copy of a wider container.
func Convert[To, From Definition](src *Container[From]) (*Container[To], error) {
	return core.Convert[To](src)
}

// ConvertMove builds a container of Kind To by relocating a wider container's
// payload, leaving src empty.
func ConvertMove[To, From Definition](src *Container[From]) (*Container[To], error) {
	return core.ConvertMove[To](src)
}

// DescriptorFor returns the descriptor of T.
func DescriptorFor[T any]() *Descriptor {
	return core.DescriptorFor[T]()
}

// Emplace constructs a value payload of type T in place.
func Emplace[K Definition, T any](init func(*T)) (*Container[K], error) {
	return core.Emplace[K](init)
}

// Holds reports whether c holds a payload of type T.
func Holds[T any, K Definition](c *Container[K]) bool {
	return core.Holds[T](c)
}

// KindOf resolves the Kind declared by K.
func KindOf[K Definition]() (*Kind, error) {
	return core.KindOf[K]()
}

// Method builds a RequiredMethod named name with func type F.
func Method[F any](name string) RequiredMethod {
	return core.Method[F](name)
}

// MustWrap is Wrap that panics on error.
func MustWrap[K Definition, T any](value T) *Container[K] {
	return core.MustWrap[K](value)
}

// ReferenceDescriptor returns the descriptor shared by all pointer payloads.
func ReferenceDescriptor() *Descriptor {
	return core.ReferenceDescriptor()
}

// Result returns out[i] as a T; a nil result yields the zero T.
func Result[T any](out []any, i int) T {
	return core.Result[T](out, i)
}

// Swap exchanges the contents of two containers. A nil container only
// swaps with an empty one and otherwise panics with ErrNilContainer.
func Swap[K Definition](a, b *Container[K]) {
	core.Swap(a, b)
}

// Target returns a pointer to c's payload if it is a T.
func Target[T any, K Definition](c *Container[K]) (*T, error) {
	return core.Target[T](c)
}

// Wrap returns a container holding value.
func Wrap[K Definition, T any](value T) (*Container[K], error) {
	return core.Wrap[K](value)
}
