package core_test

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/toejough/iface/internal/core"
)

// Kinds used across the core tests.

type speakerKind struct{}

func (speakerKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func() string]("Speak")}
}

type petKind struct{}

func (petKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{
		core.Method[func() string]("Speak"),
		core.Method[func(string)]("Rename"),
		core.Method[func() string]("Name"),
	}
}

// namerKind shares Name with petKind but not Speak.
type namerKind struct{}

func (namerKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func() string]("Name")}
}

// loudSpeakerKind requires Speak with a different signature than speakerKind.
type loudSpeakerKind struct{}

func (loudSpeakerKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func(int) string]("Speak")}
}

type formatterKind struct{}

func (formatterKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func(string, ...any) string]("Format")}
}

type describerKind struct{}

func (describerKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{
		core.Method[func() fmt.Stringer]("Describe"),
		core.Method[func(*strings.Builder)]("Render"),
	}
}

type scalerKind struct{}

func (scalerKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func(float64) float64]("Scale")}
}

type writerKind struct{}

func (writerKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func([]byte) (int, error)]("Write")}
}

type counterKind struct{}

func (counterKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{
		core.Method[func()]("Inc"),
		core.Method[func() int]("Count"),
	}
}

// countOnlyKind is counterKind without Inc.
type countOnlyKind struct{}

func (countOnlyKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func() int]("Count")}
}

// Invalid definitions.

type emptyKind struct{}

func (emptyKind) Methods() []core.RequiredMethod { return nil }

type duplicateKind struct{}

func (duplicateKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{
		core.Method[func() string]("Speak"),
		core.Method[func() int]("Speak"),
	}
}

type unexportedKind struct{}

func (unexportedKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[func() string]("speak")}
}

type notFuncKind struct{}

func (notFuncKind) Methods() []core.RequiredMethod {
	return []core.RequiredMethod{core.Method[string]("Speak")}
}

type hugeKind struct{}

func (hugeKind) Methods() []core.RequiredMethod {
	methods := make([]core.RequiredMethod, core.MaxMethods+1)
	for i := range methods {
		methods[i] = core.Method[func()](fmt.Sprintf("M%d", i))
	}

	return methods
}

// Payloads.

type dog struct {
	name string
}

func (d dog) Name() string { return d.name }

func (d *dog) Rename(name string) { d.name = name }

func (d dog) Speak() string { return d.name + " says woof" }

// phasor has the strictest alignment of any Go type.
type phasor struct {
	z complex128
}

func (p phasor) Speak() string { return fmt.Sprint(p.z) }

type cat struct{}

func (cat) Speak() string { return "meow" }

type mute struct{}

func (mute) Name() string { return "mute" }

type label string

func (l label) String() string { return "label:" + string(l) }

type describer struct {
	text string
}

func (d describer) Describe() label { return label(d.text) }

func (d describer) Render(w io.Writer) {
	_, _ = io.WriteString(w, d.text)
}

type printer struct {
	prefix string
}

func (p printer) Format(format string, args ...any) string {
	return p.prefix + fmt.Sprintf(format, args...)
}

// plainPrinter has Format's parameters without the variadic shape.
type plainPrinter struct{}

func (plainPrinter) Format(format string, args []any) string {
	return fmt.Sprintf(format, args...)
}

type doubler struct{}

func (doubler) Scale(x float64) float64 { return 2 * x }

type counter struct {
	n int
}

func (c *counter) Count() int { return c.n }

func (c *counter) Inc() { c.n++ }

// tally counts with the wrong result type.
type tally struct{}

func (tally) Count() string { return "many" }

func (tally) Inc() {}

// guarded is move-only: it carries a mutex.
type guarded struct {
	mu sync.Mutex
	n  int
}

func (g *guarded) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.n
}

func (g *guarded) Inc() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++
}

// tagged is move-only through the NoCopy marker.
type tagged struct {
	_ core.NoCopy

	text string
}

func (t *tagged) Speak() string { return t.text }

// pack has a slice that must be deep-copied.
type pack struct {
	members []string
}

func (p pack) Clone() pack {
	return pack{members: append([]string(nil), p.members...)}
}

func (p pack) Speak() string { return strings.Join(p.members, ",") }

// resource records finalization.
type resource struct {
	closed *bool
}

func (r *resource) Finalize() { *r.closed = true }

func (r resource) Speak() string { return "resource" }
