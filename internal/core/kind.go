package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// MaxMethods bounds the arity of a Kind.
const MaxMethods = 64

// Definition declares a Kind. Implementations are usually empty structs:
//
//	type Speaker struct{}
//
//	func (Speaker) Methods() []core.RequiredMethod {
//		return []core.RequiredMethod{core.Method[func() string]("Speak")}
//	}
//
// Methods must return the same list on every call; it is read once.
type Definition interface {
	Methods() []RequiredMethod
}

// Kind is a validated, ordered method set. Two containers share a Kind iff
// they share a Definition type; the method order is the dispatch table order.
type Kind struct {
	name    string
	methods []RequiredMethod
	index   map[string]int
}

// KindOf resolves and caches the Kind declared by K.
func KindOf[K Definition]() (*Kind, error) {
	defType := reflect.TypeFor[K]()

	if cached, ok := kinds.Load(defType); ok {
		entry := cached.(kindEntry) //nolint:forcetypeassert // only kindEntry is stored

		return entry.kind, entry.err
	}

	var def K

	kind, err := NewKind(defType.String(), def.Methods())
	entry, _ := kinds.LoadOrStore(defType, kindEntry{kind: kind, err: err})
	stored := entry.(kindEntry) //nolint:forcetypeassert // only kindEntry is stored

	return stored.kind, stored.err
}

// NewKind validates methods and builds an uncached Kind. Most callers want
// KindOf; NewKind exists for tooling that assembles method sets at runtime.
func NewKind(name string, methods []RequiredMethod) (*Kind, error) {
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMethods, name)
	}

	if len(methods) > MaxMethods {
		return nil, fmt.Errorf("%w: %s has %d, limit is %d", ErrTooManyMethods, name, len(methods), MaxMethods)
	}

	index := make(map[string]int, len(methods))

	for i, method := range methods {
		err := method.validate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if _, dup := index[method.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateMethod, name, method.Name)
		}

		index[method.Name] = i
	}

	return &Kind{
		name:    name,
		methods: slices.Clone(methods),
		index:   index,
	}, nil
}

// Arity returns the number of required methods.
func (k *Kind) Arity() int {
	return len(k.methods)
}

// ConvertibleFrom reports whether a container of Kind wide can be converted
// into one of Kind k: every method of k must exist in wide with an identical
// signature. The answer is cached per pair.
func (k *Kind) ConvertibleFrom(wide *Kind) error {
	if k == wide {
		return nil
	}

	key := kindPair{narrow: k, wide: wide}
	if cached, ok := subsets.Load(key); ok {
		if cached == nil {
			return nil
		}

		return cached.(error) //nolint:forcetypeassert // only errors are stored
	}

	err := k.checkSubsetOf(wide)
	if err != nil {
		subsets.Store(key, err)

		return err
	}

	subsets.Store(key, nil)

	return nil
}

// Index returns the table slot of the named method.
func (k *Kind) Index(name string) (int, bool) {
	i, ok := k.index[name]

	return i, ok
}

// Methods returns a copy of the required methods in declaration order.
func (k *Kind) Methods() []RequiredMethod {
	return slices.Clone(k.methods)
}

// Name returns the name of the Definition type.
func (k *Kind) Name() string {
	return k.name
}

// String renders the Kind as an interface literal.
func (k *Kind) String() string {
	parts := make([]string, len(k.methods))
	for i, method := range k.methods {
		parts[i] = method.String()
	}

	return k.name + " interface{ " + strings.Join(parts, "; ") + " }"
}

func (k *Kind) checkSubsetOf(wide *Kind) error {
	for _, method := range k.methods {
		slot, ok := wide.index[method.Name]
		if !ok {
			return fmt.Errorf("%w: %s lacks %s required by %s", ErrStructuralMismatch, wide.name, method.Name, k.name)
		}

		if have := wide.methods[slot].Signature; have != method.Signature {
			return fmt.Errorf("%w: %s.%s is %s, %s requires %s",
				ErrStructuralMismatch, wide.name, method.Name, have, k.name, method.Signature)
		}
	}

	return nil
}

type kindEntry struct {
	kind *Kind
	err  error
}

type kindPair struct {
	narrow, wide *Kind
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Kind identity is process-wide
	kinds sync.Map // reflect.Type -> kindEntry
	//nolint:gochecknoglobals // subset answers are process-wide
	subsets sync.Map // kindPair -> error (nil for convertible)
)
