// Package speaker shows one Speaker held by value and by reference.
package speaker

//go:generate go run ../../cmd/kindgen Speaker

// Speaker is anything that can speak and be renamed.
type Speaker interface {
	Speak() string
	Rename(name string)
}

// Dog speaks with its name.
type Dog struct {
	Name string
}

// Rename changes the dog's name.
func (d *Dog) Rename(name string) {
	d.Name = name
}

// Speak returns what the dog says.
func (d Dog) Speak() string {
	return d.Name + " says woof"
}

// Introduce renames s and returns what it says afterwards.
func Introduce(s Speaker, name string) string {
	s.Rename(name)

	return s.Speak()
}
