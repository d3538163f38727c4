// Package match provides gomega-compatible matchers for iface containers.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/iface/match"
//	)
//
//	g.Expect(box).To(HoldType[Dog]())
//	g.Expect(box).To(RespondWith("Speak", "Rex says woof"))
package match

import (
	"errors"
	"fmt"
	"reflect"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful inside RespondWith when one result doesn't matter.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// BeEmptyContainer matches a container that holds nothing.
func BeEmptyContainer() Matcher {
	return stateMatcher{
		want: "empty",
		test: func(c container) bool { return !c.Valid() },
	}
}

// HaveReferenceSemantics matches a container holding a pointer payload, whose
// calls reach an object it does not own.
func HaveReferenceSemantics() Matcher {
	return stateMatcher{
		want: "a reference",
		test: func(c container) bool { return c.IsReference() },
	}
}

// HoldType matches a container whose payload is a T.
//
// Example:
//
//	g.Expect(box).To(HoldType[*Dog]())
func HoldType[T any]() Matcher {
	want := reflect.TypeFor[T]()

	return stateMatcher{
		want: "holding a " + want.String(),
		test: func(c container) bool { return c.HoldsType(want) },
	}
}

// RespondWith matches a container whose named method, called with no
// arguments, returns want. Each expected result may be a Matcher.
func RespondWith(method string, want ...any) Matcher {
	return &respondMatcher{method: method, want: want}
}

// SatisfyFunc returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	g.Expect(box.MustCall("Speak")[0]).To(SatisfyFunc(func(s string) error {
//	    if !strings.HasSuffix(s, "woof") { return fmt.Errorf("not a dog: %q", s) }
//	    return nil
//	}))
func SatisfyFunc[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

// NegatedFailureMessage describes why a negated BeAny fails.
func (anyMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v not to match anything", actual)
}

// container is the method set every *iface.Container[K] has, whatever K is.
type container interface {
	Call(name string, args ...any) ([]any, error)
	HoldsType(t reflect.Type) bool
	IsReference() bool
	Valid() bool
}

type respondMatcher struct {
	method string
	want   []any
	got    []any
	err    error
}

func (m *respondMatcher) FailureMessage(actual any) string {
	if m.err != nil {
		return fmt.Sprintf("%v.%s() failed: %v", actual, m.method, m.err)
	}

	return fmt.Sprintf("expected %v.%s() to return %v, got %v", actual, m.method, m.want, m.got)
}

func (m *respondMatcher) Match(actual any) (bool, error) {
	c, err := asContainer(actual)
	if err != nil {
		return false, err
	}

	m.got, m.err = c.Call(m.method)
	if m.err != nil || len(m.got) != len(m.want) {
		return false, nil
	}

	for i, want := range m.want {
		ok, err := matchOne(want, m.got[i])
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

func (m *respondMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v.%s() not to return %v", actual, m.method, m.want)
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

func (m *satisfyMatcher[T]) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("value %v unexpectedly satisfies predicate", actual)
}

type stateMatcher struct {
	want string
	test func(container) bool
}

func (m stateMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %v to be %s", actual, m.want)
}

func (m stateMatcher) Match(actual any) (bool, error) {
	c, err := asContainer(actual)
	if err != nil {
		return false, err
	}

	return m.test(c), nil
}

func (m stateMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v not to be %s", actual, m.want)
}

func asContainer(actual any) (container, error) {
	c, ok := actual.(container)
	if !ok {
		return nil, fmt.Errorf("%w: expected an *iface.Container, got %T", errTypeMismatch, actual)
	}

	return c, nil
}

// matchOne applies want to got: a Matcher is run, anything else compares
// with reflect.DeepEqual.
func matchOne(want, got any) (bool, error) {
	if matcher, ok := want.(Matcher); ok {
		return matcher.Match(got)
	}

	return reflect.DeepEqual(want, got), nil
}
