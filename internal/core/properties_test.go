package core_test

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/toejough/iface/internal/core"
)

// TestWrap_Property proves a value payload answers every call exactly as the
// original value would, for any name.
func TestWrap_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.String().Draw(rt, "name")
		pet := dog{name: name}

		box := core.MustWrap[petKind](pet)

		if got := core.Result[string](box.MustCall("Speak"), 0); got != pet.Speak() {
			rt.Fatalf("Speak() = %q, want %q", got, pet.Speak())
		}

		if got := core.Result[string](box.MustCall("Name"), 0); got != name {
			rt.Fatalf("Name() = %q, want %q", got, name)
		}
	})
}

// TestClone_Property proves mutating a clone never reaches the original.
func TestClone_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		before := rapid.String().Draw(rt, "before")
		after := rapid.String().Draw(rt, "after")

		box := core.MustWrap[petKind](dog{name: before})

		clone, err := box.Clone()
		if err != nil {
			rt.Fatalf("Clone: %v", err)
		}

		clone.MustCall("Rename", after)

		if got := core.Result[string](box.MustCall("Name"), 0); got != before {
			rt.Fatalf("original Name() = %q, want %q", got, before)
		}

		if got := core.Result[string](clone.MustCall("Name"), 0); got != after {
			rt.Fatalf("clone Name() = %q, want %q", got, after)
		}
	})
}

// TestSwap_Property proves swapping twice restores both containers, including
// empty ones.
func TestSwap_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := drawSpeaker(rt, "a")
		b := drawSpeaker(rt, "b")

		wantA := speakOrEmpty(a)
		wantB := speakOrEmpty(b)

		core.Swap(a, b)

		if speakOrEmpty(a) != wantB || speakOrEmpty(b) != wantA {
			rt.Fatalf("after one swap: %q/%q, want %q/%q", speakOrEmpty(a), speakOrEmpty(b), wantB, wantA)
		}

		core.Swap(a, b)

		if speakOrEmpty(a) != wantA || speakOrEmpty(b) != wantB {
			rt.Fatalf("after two swaps: %q/%q, want %q/%q", speakOrEmpty(a), speakOrEmpty(b), wantA, wantB)
		}
	})
}

// TestConvert_Property proves a narrowed container answers its methods the
// same as the wide one did, for payloads of any type in the pool.
func TestConvert_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.String().Draw(rt, "name")
		byRef := rapid.Bool().Draw(rt, "byRef")

		var pet *core.Container[petKind]
		if byRef {
			pet = core.MustWrap[petKind](&dog{name: name})
		} else {
			pet = core.MustWrap[petKind](dog{name: name})
		}

		want := pet.MustCall("Speak")

		speaker, err := core.Convert[speakerKind](pet)
		if err != nil {
			rt.Fatalf("Convert: %v", err)
		}

		if got := speaker.MustCall("Speak"); !reflect.DeepEqual(got, want) {
			rt.Fatalf("Speak() = %v, want %v", got, want)
		}

		if speaker.IsReference() != byRef {
			rt.Fatalf("IsReference() = %v, want %v", speaker.IsReference(), byRef)
		}

		moved, err := core.ConvertMove[speakerKind](pet)
		if err != nil {
			rt.Fatalf("ConvertMove: %v", err)
		}

		if pet.Valid() {
			rt.Fatalf("source still valid after ConvertMove")
		}

		if got := moved.MustCall("Speak"); !reflect.DeepEqual(got, want) {
			rt.Fatalf("moved Speak() = %v, want %v", got, want)
		}
	})
}

// TestDescriptor_Property proves descriptor identity tracks payload type
// identity across the pool of test payloads.
func TestDescriptor_Property(t *testing.T) {
	t.Parallel()

	pool := []func() *core.Container[speakerKind]{
		func() *core.Container[speakerKind] { return core.MustWrap[speakerKind](cat{}) },
		func() *core.Container[speakerKind] { return core.MustWrap[speakerKind](dog{}) },
		func() *core.Container[speakerKind] { return core.MustWrap[speakerKind](pack{}) },
		func() *core.Container[speakerKind] { return core.MustWrap[speakerKind](&cat{}) },
	}

	rapid.Check(t, func(rt *rapid.T) {
		i := rapid.IntRange(0, len(pool)-1).Draw(rt, "i")
		j := rapid.IntRange(0, len(pool)-1).Draw(rt, "j")

		a, b := pool[i](), pool[j]()

		sameType := sameHeldType(a, b)
		if sameType != (i == j) {
			rt.Fatalf("pool[%d] vs pool[%d]: same type = %v", i, j, sameType)
		}
	})
}

func drawSpeaker(rt *rapid.T, label string) *core.Container[speakerKind] {
	switch rapid.IntRange(0, 2).Draw(rt, label) {
	case 0:
		return &core.Container[speakerKind]{}
	case 1:
		return core.MustWrap[speakerKind](cat{})
	default:
		return core.MustWrap[speakerKind](dog{name: rapid.String().Draw(rt, label+"Name")})
	}
}

func sameHeldType(a, b *core.Container[speakerKind]) bool {
	switch {
	case core.Holds[cat](a):
		return core.Holds[cat](b)
	case core.Holds[dog](a):
		return core.Holds[dog](b)
	case core.Holds[pack](a):
		return core.Holds[pack](b)
	case core.Holds[*cat](a):
		return core.Holds[*cat](b)
	default:
		return false
	}
}

func speakOrEmpty(c *core.Container[speakerKind]) string {
	if !c.Valid() {
		return "<empty>"
	}

	return core.Result[string](c.MustCall("Speak"), 0)
}
