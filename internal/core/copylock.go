package core

import (
	"reflect"
	"sync"
)

// NoCopy may be added to a struct as a named field to make the struct
// move-only for containers (and for go vet's copylocks check):
//
//	type Conn struct {
//		_ core.NoCopy
//		fd int
//	}
type NoCopy struct{}

// Lock is a no-op used by the copylocks convention.
func (*NoCopy) Lock() {}

// Unlock is a no-op used by the copylocks convention.
func (*NoCopy) Unlock() {}

// lockPath follows go vet's copylocks rule: a type must not be copied if a
// pointer to it is a sync.Locker while the value is not, or if any struct
// field or array element is such a type. It returns the offending path, or
// "" for freely copyable types.
func lockPath(t reflect.Type) string {
	return lockPathSeen(t, map[reflect.Type]bool{})
}

func lockPathSeen(t reflect.Type, seen map[reflect.Type]bool) string {
	if seen[t] {
		return ""
	}

	seen[t] = true

	for t.Kind() == reflect.Array {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return ""
	}

	if reflect.PointerTo(t).Implements(lockerType) && !t.Implements(lockerType) {
		return t.String()
	}

	for i := range t.NumField() {
		field := t.Field(i)

		sub := lockPathSeen(field.Type, seen)
		if sub != "" {
			return t.String() + "." + field.Name + ": " + sub
		}
	}

	return ""
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type constant
	lockerType = reflect.TypeFor[sync.Locker]()
)
