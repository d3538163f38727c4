package generate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akedrou/textdiff"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	. "github.com/onsi/gomega" //nolint:revive // gomega DSL
	"github.com/toejough/go-reorder"
	"pgregory.net/rapid"

	detect "github.com/toejough/iface/internal/kindgen/2_detect"
	generate "github.com/toejough/iface/internal/kindgen/3_generate"
)

const storeSource = `package shapes

import (
	"context"
	"io"
	"strings"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(key string, r io.Reader)
	Keys(prefix string, limit ...int) []string
	Close() error
}

var _ = strings.ToUpper
`

// TestCode_Golden pins the generated file for an interface that uses
// imported types, multiple results, no results and a variadic tail.
func TestCode_Golden(t *testing.T) {
	t.Parallel()

	iface := detectInterface(t, storeSource, "Store", detect.Source{})

	got, err := generate.Code(generate.Input{Package: "shapes", Name: "Store", Interface: iface})
	if err != nil {
		t.Fatalf("Code: %v", err)
	}

	wantBytes, err := os.ReadFile(filepath.Join("testdata", "store.golden"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	if want := string(wantBytes); got != want {
		t.Errorf("generated code mismatch:\n%s", textdiff.Unified("store.golden", "generated", want, got))
	}

	reordered, err := reorder.Source(got)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if reordered != got {
		t.Errorf("generated code is not in declaration order:\n%s", textdiff.Unified("generated", "reordered", got, reordered))
	}
}

func TestCode_QualifiesRemoteInterface(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	src := `package shapes

type Point struct{ X, Y int }

type Mover interface {
	Move(p Point, steps int) (Point, error)
	Trail() []*Point
}
`

	iface := detectInterface(t, src, "Mover", detect.Source{Alias: "shapes", Path: "example.com/geo/shapes"})

	got, err := generate.Code(generate.Input{Package: "robots", Name: "Walker", Interface: iface})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(got).To(ContainSubstring("package robots"))
	g.Expect(got).To(ContainSubstring(`"example.com/geo/shapes"`))
	g.Expect(got).To(ContainSubstring("type WalkerKind struct{}"))
	g.Expect(got).To(ContainSubstring("\t_ shapes.Mover = WalkerBox{}\n"))
	g.Expect(got).To(ContainSubstring("// WalkerKind is the iface Kind of Mover."))
	g.Expect(got).To(ContainSubstring(`iface.Method[func(shapes.Point, int) (shapes.Point, error)]("Move")`))
	g.Expect(got).To(ContainSubstring("func (box WalkerBox) Trail() []*shapes.Point {"))
	g.Expect(got).To(ContainSubstring("func NewWalkerBox[T any](v T) (WalkerBox, error) {"))
}

func TestCode_NamesUnnamedAndReservedParams(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	src := `package p

type Odd interface {
	Mix(_ int, _ string, out bool, box, iface float64)
}
`

	got, err := generate.Code(generate.Input{
		Package:   "p",
		Name:      "Odd",
		Interface: detectInterface(t, src, "Odd", detect.Source{}),
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(ContainSubstring(
		"func (box OddBox) Mix(arg0 int, arg1 string, outArg bool, boxArg float64, ifaceArg float64) {"))
	g.Expect(got).To(ContainSubstring(`box.MustCall("Mix", arg0, arg1, outArg, boxArg, ifaceArg)`))
}

func TestCode_AlwaysParses_Property(t *testing.T) {
	t.Parallel()

	types := []string{"int", "string", "error", "[]byte", "map[string]int", "func(int) bool", "chan<- int", "*struct{}", "any"}

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[A-Z][a-z]{0,8}`).Filter(func(s string) bool { return s != "Container" })
		names := rapid.SliceOfNDistinct(name, 1, 6, func(s string) string { return s }).Draw(rt, "names")

		var body strings.Builder

		for _, name := range names {
			params := rapid.SliceOfN(rapid.SampledFrom(types), 0, 3).Draw(rt, name+"Params")
			results := rapid.SliceOfN(rapid.SampledFrom(types), 0, 3).Draw(rt, name+"Results")
			variadic := len(params) > 0 && rapid.Bool().Draw(rt, name+"Variadic")

			if variadic {
				params[len(params)-1] = "..." + params[len(params)-1]
			}

			body.WriteString("\t" + name + "(" + strings.Join(params, ", ") + ")")

			if len(results) > 0 {
				body.WriteString(" (" + strings.Join(results, ", ") + ")")
			}

			body.WriteString("\n")
		}

		src := "package p\n\ntype Gen interface {\n" + body.String() + "}\n"

		file, err := decorator.Parse(src)
		if err != nil {
			rt.Fatalf("test source does not parse: %v\n%s", err, src)
		}

		iface, err := detect.FindInterface([]*dst.File{file}, "Gen", detect.Source{})
		if err != nil {
			rt.Fatalf("FindInterface: %v", err)
		}

		code, err := generate.Code(generate.Input{Package: "p", Name: "Gen", Interface: iface})
		if err != nil {
			rt.Fatalf("Code: %v\n%s", err, src)
		}

		if strings.Count(code, "forwards to the held value") != len(names) {
			rt.Fatalf("expected %d forwarding methods:\n%s", len(names), code)
		}

		reordered, err := reorder.Source(code)
		if err != nil || reordered != code {
			rt.Fatalf("generated code is not in declaration order (%v):\n%s", err, code)
		}
	})
}

func detectInterface(t *testing.T, src, name string, from detect.Source) detect.Interface {
	t.Helper()

	file, err := decorator.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	iface, err := detect.FindInterface([]*dst.File{file}, name, from)
	if err != nil {
		t.Fatalf("FindInterface: %v", err)
	}

	return iface
}
