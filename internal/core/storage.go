package core

import "reflect"

// Storage is the owning buffer of a container: a pointer to exactly one
// payload, obtained from reflect.New. The zero Storage holds nothing.
type Storage struct {
	ptr reflect.Value
}

// IsZero reports whether the storage holds nothing.
func (s Storage) IsZero() bool {
	return !s.ptr.IsValid()
}

// Elem returns the payload itself (addressable).
func (s Storage) Elem() reflect.Value {
	return s.ptr.Elem()
}

// Type returns the payload type.
func (s Storage) Type() reflect.Type {
	return s.ptr.Type().Elem()
}

// allocate returns fresh storage holding the zero value of t.
func allocate(t reflect.Type) Storage {
	return Storage{ptr: reflect.New(t)}
}
