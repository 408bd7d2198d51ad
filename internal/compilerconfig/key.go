package compilerconfig

import "sync/atomic"

// lastKeyID hands out identity tokens. Zero is never issued.
var lastKeyID atomic.Uint64

// Identifier is the untyped view of a key, used where the value type does not
// matter (presence checks, removal, diagnostics).
type Identifier interface {
	ID() uint64
	Name() string
}

// Key addresses one configuration slot holding a value of type T.
type Key[T any] struct {
	id   uint64
	name string
}

// NewKey declares a key with a fresh identity. The name is only used in
// diagnostics; calling NewKey twice with the same name yields two distinct keys.
func NewKey[T any](name string) *Key[T] {
	return &Key[T]{
		id:   lastKeyID.Add(1),
		name: name,
	}
}

// NewListKey declares a key holding an ordered list of T.
func NewListKey[T any](name string) *Key[[]T] {
	return NewKey[[]T](name)
}

// ID returns the identity token of the key.
func (k *Key[T]) ID() uint64 {
	return k.id
}

// Name returns the diagnostic name of the key.
func (k *Key[T]) Name() string {
	return k.name
}

func (k *Key[T]) String() string {
	return k.name
}
