package iface_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // gomega DSL

	"github.com/toejough/iface"
)

type Speaker struct{}

func (Speaker) Methods() []iface.RequiredMethod {
	return []iface.RequiredMethod{iface.Method[func() string]("Speak")}
}

type Pet struct{}

func (Pet) Methods() []iface.RequiredMethod {
	return []iface.RequiredMethod{
		iface.Method[func() string]("Speak"),
		iface.Method[func(string)]("Rename"),
	}
}

type Dog struct {
	Name string
}

func (d *Dog) Rename(name string) { d.Name = name }

func (d Dog) Speak() string { return d.Name + " says woof" }

func ExampleWrap() {
	box, err := iface.Wrap[Speaker](Dog{Name: "Rex"})
	if err != nil {
		fmt.Println(err)

		return
	}

	out, _ := box.Call("Speak")
	fmt.Println(out[0])
	// Output: Rex says woof
}

func ExampleConvert() {
	pet := iface.MustWrap[Pet](&Dog{Name: "Rex"})

	speaker, err := iface.Convert[Speaker](pet)
	if err != nil {
		fmt.Println(err)

		return
	}

	pet.MustCall("Rename", "Max")
	fmt.Println(iface.Result[string](speaker.MustCall("Speak"), 0))
	// Output: Max says woof
}

func TestWrap_ValueIsACopy(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dog := Dog{Name: "Rex"}
	box := iface.MustWrap[Speaker](dog)

	dog.Name = "Max"

	g.Expect(box.MustCall("Speak")).To(Equal([]any{"Rex says woof"}))
	g.Expect(iface.Holds[Dog](box)).To(BeTrue())
}

func TestWrap_PointerIsAReference(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dog := &Dog{Name: "Rex"}
	box := iface.MustWrap[Speaker](dog)

	dog.Name = "Max"

	g.Expect(box.MustCall("Speak")).To(Equal([]any{"Max says woof"}))
	g.Expect(box.IsReference()).To(BeTrue())
	g.Expect(iface.DescriptorFor[*Dog]()).To(BeIdenticalTo(iface.ReferenceDescriptor()))
}

func TestErrors_AreCategorized(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := iface.Wrap[Pet](struct{}{})
	g.Expect(errors.Is(err, iface.ErrStructuralMismatch)).To(BeTrue())

	_, err = (&iface.Container[Speaker]{}).Call("Speak")
	g.Expect(errors.Is(err, iface.ErrEmpty)).To(BeTrue())

	_, err = iface.Target[int](iface.MustWrap[Speaker](Dog{}))
	g.Expect(errors.Is(err, iface.ErrNotFound)).To(BeTrue())

	g.Expect(errors.Is(iface.ErrNotCopyable, iface.ErrDefinition)).To(BeTrue())
	g.Expect(errors.Is(iface.ErrNilPayload, iface.ErrStructuralMismatch)).To(BeTrue())
}

func TestKindOf_Public(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	kind, err := iface.KindOf[Pet]()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(kind.Arity()).To(Equal(2))
	g.Expect(kind.String()).To(Equal("iface_test.Pet interface{ Speak() string; Rename(string) }"))
}

func TestEmplaceAndSwap_Public(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	a, err := iface.Emplace[Speaker](func(d *Dog) { d.Name = "Rex" })
	g.Expect(err).NotTo(HaveOccurred())

	b := &iface.Container[Speaker]{}
	iface.Swap(a, b)

	g.Expect(a.Valid()).To(BeFalse())
	g.Expect(b.MustCall("Speak")).To(Equal([]any{"Rex says woof"}))

	moved, err := iface.ConvertMove[Speaker](b)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Valid()).To(BeFalse())

	got, err := iface.Target[Dog](moved)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got.Name).To(Equal("Rex"))
}
