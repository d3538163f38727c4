// Package store forwards variadic calls, multiple results and errors through
// a generated box, and finalizes owned payloads on Reset.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:generate go run ../../cmd/kindgen Store

// Store is a small key/value store.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte)
	Keys(prefix string, limit ...int) []string
	Close() error
}

// Mem is an in-memory Store.
type Mem struct {
	data   map[string][]byte
	closed *bool
}

// NewMem returns an empty Mem. closed, if non-nil, is set when the store is
// closed or finalized.
func NewMem(closed *bool) Mem {
	return Mem{data: map[string][]byte{}, closed: closed}
}

// Clone deep-copies the data so copies never share state.
func (m Mem) Clone() Mem {
	data := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		data[k] = append([]byte(nil), v...)
	}

	return Mem{data: data, closed: m.closed}
}

// Close marks the store closed.
func (m Mem) Close() error {
	if m.closed == nil {
		return ErrNotTracked
	}

	*m.closed = true

	return nil
}

// Finalize closes the store when its owning container is reset.
func (m Mem) Finalize() {
	_ = m.Close()
}

// Get returns the value stored under key.
func (m Mem) Get(key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, key)
	}

	return value, nil
}

// Keys lists the keys with prefix in order. limit, if given, caps the count.
func (m Mem) Keys(prefix string, limit ...int) []string {
	keys := make([]string, 0, len(m.data))

	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	if len(limit) > 0 && limit[0] < len(keys) {
		keys = keys[:limit[0]]
	}

	return keys
}

// Put stores value under key.
func (m Mem) Put(key string, value []byte) {
	m.data[key] = value
}

// Errors.
var (
	ErrMissing    = errors.New("missing key")
	ErrNotTracked = errors.New("close is not tracked")
)
