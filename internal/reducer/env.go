// Package reducer holds the pure state transitions behind every user action.
// Each function takes the current state and returns the next one without
// touching the input's collections.
package reducer

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Env supplies the clock and id source reducers may not reach for themselves.
type Env struct {
	Now   func() time.Time
	NewID func() string
}

func DefaultEnv() Env {
	return Env{Now: time.Now, NewID: uuid.NewString}
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// uniqueID draws ids until one is not taken. A deterministic source that
// keeps repeating itself gets a numeric suffix instead.
func (e Env) uniqueID(taken func(string) bool) string {
	next := e.NewID
	if next == nil {
		next = uuid.NewString
	}
	id := next()
	for attempt := 0; attempt < 8 && taken(id); attempt++ {
		id = next()
	}
	base := id
	for n := 2; taken(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func hasID[T any](items []T, key func(T) string) func(string) bool {
	return func(id string) bool {
		for _, item := range items {
			if key(item) == id {
				return true
			}
		}
		return false
	}
}

func indexOf[T any](items []T, key func(T) string, id string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

// prepend returns a fresh slice so the caller's backing array is never shared.
func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func without[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func replaced[T any](items []T, i int, item T) []T {
	out := append([]T(nil), items...)
	out[i] = item
	return out
}
