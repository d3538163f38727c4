// Package counter declares Kinds by hand and holds a payload that must not
// be copied.
package counter

import (
	"sync"

	"github.com/toejough/iface"
)

// Counter is a Kind: anything that can count up and report its total.
type Counter struct{}

// Methods implements iface.Definition.
func (Counter) Methods() []iface.RequiredMethod {
	return []iface.RequiredMethod{
		iface.Method[func(int) int]("Add"),
		iface.Method[func() int]("Total"),
	}
}

// Reader is a narrower Kind that can only report.
type Reader struct{}

// Methods implements iface.Definition.
func (Reader) Methods() []iface.RequiredMethod {
	return []iface.RequiredMethod{
		iface.Method[func() int]("Total"),
	}
}

// Locked is a concurrency-safe counter. Its mutex makes it move-only.
type Locked struct {
	mu    sync.Mutex
	total int
}

// Add adds n and returns the new total.
func (l *Locked) Add(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.total += n

	return l.total
}

// Total returns the running total.
func (l *Locked) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.total
}

// Plain is a counter with no lock; it copies freely.
type Plain struct {
	N int
}

// Add adds n and returns the new total.
func (p *Plain) Add(n int) int {
	p.N += n

	return p.N
}

// Total returns the running total.
func (p *Plain) Total() int {
	return p.N
}
