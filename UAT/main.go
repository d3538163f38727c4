// Package main demonstrates iface boxes with the example Speaker interface.
package main

import (
	"fmt"
	"os"

	speaker "github.com/toejough/iface/UAT/01-value-and-reference"
)

type robot struct {
	serial string
}

func (r *robot) Rename(name string) {
	r.serial = name
}

func (r *robot) Speak() string {
	return "unit " + r.serial + " online"
}

func main() {
	fmt.Println("Hello, World!")

	values := []any{speaker.Dog{Name: "Rex"}, &robot{serial: "7"}}

	for _, value := range values {
		box, err := speaker.NewSpeakerBox(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(box, "->", speaker.Introduce(box, "Max"))
	}
}
