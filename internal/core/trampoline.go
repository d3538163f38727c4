package core

import (
	"fmt"
	"reflect"
	"sync"
)

// Trampoline calls one required method on the payload held in a Storage.
// args are already converted to the required parameter types, with any
// variadic tail packed into its slice; results come back converted to the
// required result types, nil for a method without results.
type Trampoline func(s Storage, args []reflect.Value) []reflect.Value

// TrampolineFor returns the one trampoline serving method for payload type
// payload, building and caching it on first use.
func TrampolineFor(payload reflect.Type, method RequiredMethod) (Trampoline, error) {
	key := trampolineKey{payload: payload, name: method.Name, signature: method.Signature}

	if cached, ok := trampolines.Load(key); ok {
		entry := cached.(trampolineEntry) //nolint:forcetypeassert // only entries are stored

		return entry.fn, entry.err
	}

	fn, err := newTrampoline(payload, method)
	entry, _ := trampolines.LoadOrStore(key, trampolineEntry{fn: fn, err: err})
	stored := entry.(trampolineEntry) //nolint:forcetypeassert // only entries are stored

	return stored.fn, stored.err
}

type trampolineEntry struct {
	fn  Trampoline
	err error
}

type trampolineKey struct {
	payload   reflect.Type
	name      string
	signature reflect.Type
}

// assignTo returns v as a value of type t. v must be assignable to t.
func assignTo(v reflect.Value, t reflect.Type) reflect.Value {
	if v.Type() == t {
		return v
	}

	out := reflect.New(t).Elem()
	out.Set(v)

	return out
}

// boundSignature drops the receiver from a method's func type.
func boundSignature(method reflect.Method) reflect.Type {
	full := method.Type

	in := make([]reflect.Type, 0, full.NumIn()-1)
	for i := 1; i < full.NumIn(); i++ {
		in = append(in, full.In(i))
	}

	out := make([]reflect.Type, 0, full.NumOut())
	for i := range full.NumOut() {
		out = append(out, full.Out(i))
	}

	return reflect.FuncOf(in, out, full.IsVariadic())
}

// newTrampoline resolves the concrete method. A pointer payload is a
// reference: the stored pointer is the receiver and the pointee is never
// owned. Any other payload is called through the storage pointer, so pointer
// receiver methods see the container's own copy.
func newTrampoline(payload reflect.Type, required RequiredMethod) (Trampoline, error) {
	reference := payload.Kind() == reflect.Pointer

	receiver := reflect.PointerTo(payload)
	if reference {
		receiver = payload
	}

	method, ok := receiver.MethodByName(required.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %s", ErrStructuralMismatch, payload, required)
	}

	concrete := boundSignature(method)

	err := required.compatible(concrete)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", payload, err)
	}

	fn := method.Func
	variadic := concrete.IsVariadic()
	results := required.Signature

	return func(s Storage, args []reflect.Value) []reflect.Value {
		recv := s.ptr
		if reference {
			recv = s.ptr.Elem()
		}

		in := make([]reflect.Value, 0, len(args)+1)
		in = append(in, recv)

		for i, arg := range args {
			in = append(in, assignTo(arg, concrete.In(i)))
		}

		var out []reflect.Value
		if variadic {
			out = fn.CallSlice(in)
		} else {
			out = fn.Call(in)
		}

		if len(out) == 0 {
			return nil
		}

		for i := range out {
			out[i] = assignTo(out[i], results.Out(i))
		}

		return out
	}, nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // one trampoline per (method, payload type)
	trampolines sync.Map // trampolineKey -> trampolineEntry
)
