package core

import (
	"fmt"
	"go/token"
	"reflect"
	"strings"
)

// RequiredMethod names one method a Kind requires, with its signature.
// Signature is a func type without a receiver.
type RequiredMethod struct {
	Name      string
	Signature reflect.Type
}

// Method builds a RequiredMethod from a func type parameter:
//
//	core.Method[func(string) (int, error)]("Parse")
func Method[F any](name string) RequiredMethod {
	return RequiredMethod{Name: name, Signature: reflect.TypeFor[F]()}
}

// String renders the method the way it would appear in an interface body.
func (m RequiredMethod) String() string {
	if m.Signature == nil || m.Signature.Kind() != reflect.Func {
		return m.Name + "<invalid>"
	}

	return m.Name + strings.TrimPrefix(m.Signature.String(), "func")
}

// validate checks the method in isolation.
func (m RequiredMethod) validate() error {
	if m.Signature == nil || m.Signature.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s", ErrNotFunc, m.Name)
	}

	if !token.IsIdentifier(m.Name) || !token.IsExported(m.Name) {
		return fmt.Errorf("%w: %q", ErrUnexportedMethod, m.Name)
	}

	return nil
}

// compatible reports whether a concrete method of type concrete (receiver
// already bound) can serve m: same arity and variadic shape, every required
// parameter assignable to the concrete parameter, every concrete result
// assignable to the required result.
func (m RequiredMethod) compatible(concrete reflect.Type) error {
	sig := m.Signature

	if concrete.NumIn() != sig.NumIn() {
		return fmt.Errorf("%w: %s: takes %d parameters, need %d",
			ErrStructuralMismatch, m.Name, concrete.NumIn(), sig.NumIn())
	}

	if concrete.NumOut() != sig.NumOut() {
		return fmt.Errorf("%w: %s: returns %d results, need %d",
			ErrStructuralMismatch, m.Name, concrete.NumOut(), sig.NumOut())
	}

	if concrete.IsVariadic() != sig.IsVariadic() {
		return fmt.Errorf("%w: %s: variadic mismatch", ErrStructuralMismatch, m.Name)
	}

	for i := range sig.NumIn() {
		if !sig.In(i).AssignableTo(concrete.In(i)) {
			return fmt.Errorf("%w: %s: parameter %d: %s is not assignable to %s",
				ErrStructuralMismatch, m.Name, i, sig.In(i), concrete.In(i))
		}
	}

	for i := range sig.NumOut() {
		if !concrete.Out(i).AssignableTo(sig.Out(i)) {
			return fmt.Errorf("%w: %s: result %d: %s is not assignable to %s",
				ErrStructuralMismatch, m.Name, i, concrete.Out(i), sig.Out(i))
		}
	}

	return nil
}
