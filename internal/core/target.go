package core

import (
	"fmt"
	"reflect"
)

// Holds reports whether c holds a payload of type T.
func Holds[T any, K Definition](c *Container[K]) bool {
	return c.HoldsType(reflect.TypeFor[T]())
}

// Target returns a pointer to c's payload if it is a T. For a reference
// container, T is the stored pointer type and Target returns a pointer to
// the stored pointer. A mismatch wraps ErrNotFound; an empty container
// wraps ErrEmpty.
func Target[T any, K Definition](c *Container[K]) (*T, error) {
	want := reflect.TypeFor[T]()

	if !c.Valid() {
		return nil, fmt.Errorf("%w: target %s", ErrEmpty, want)
	}

	if !c.HoldsType(want) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, want)
	}

	return c.storage.ptr.Interface().(*T), nil //nolint:forcetypeassert // storage type checked above
}
