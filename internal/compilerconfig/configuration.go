package compilerconfig

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap/zapcore"
)

type entry struct {
	key   Identifier
	value any
}

// Entry is one key/value pair reported by Entries.
type Entry struct {
	ID   uint64
	Name string
	// Label is Name, suffixed with "#<ID>" when another stored key shares
	// the name, so it can serve as a unique mapping key in rendered output.
	Label string
	Value any
}

// Configuration maps key identities to values. The zero value is not usable;
// create one with New.
type Configuration struct {
	entries  map[uint64]entry
	readOnly bool
}

// New creates an empty, writable configuration.
func New() *Configuration {
	return &Configuration{
		entries: make(map[uint64]entry),
	}
}

// Copy returns an independent, writable configuration holding the same
// associations. Later writes to either side are not visible to the other.
func (c *Configuration) Copy() *Configuration {
	return &Configuration{
		entries: maps.Clone(c.entries),
	}
}

// Snapshot returns an independent, read-only copy. Any write to the snapshot
// panics with a *ContractViolation.
func (c *Configuration) Snapshot() *Configuration {
	snap := c.Copy()
	snap.readOnly = true
	return snap
}

// ReadOnly reports whether the configuration rejects writes.
func (c *Configuration) ReadOnly() bool {
	return c.readOnly
}

// Has reports whether a value is stored under key.
func (c *Configuration) Has(key Identifier) bool {
	if isNilKey(key) {
		return false
	}
	_, ok := c.entries[key.ID()]
	return ok
}

// Remove drops the value stored under key, if any.
func (c *Configuration) Remove(key Identifier) {
	if isNilKey(key) {
		violate(nil, "nil key")
	}
	c.checkWritable(key)
	delete(c.entries, key.ID())
}

// Len returns the number of stored values.
func (c *Configuration) Len() int {
	return len(c.entries)
}

// Entries lists stored values ordered by key declaration. Lists and maps are
// returned as copies.
func (c *Configuration) Entries() []Entry {
	ids := slices.Sorted(maps.Keys(c.entries))
	names := make(map[string]int, len(ids))
	for _, e := range c.entries {
		names[e.key.Name()]++
	}

	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e := c.entries[id]
		name := e.key.Name()
		label := name
		if names[name] > 1 {
			label = fmt.Sprintf("%s#%d", name, id)
		}
		out = append(out, Entry{ID: id, Name: name, Label: label, Value: cloneValue(e.value)})
	}
	return out
}

// MarshalLogObject renders every entry under its Entry label.
func (c *Configuration) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("read_only", c.readOnly)
	for _, e := range c.Entries() {
		switch v := e.Value.(type) {
		case bool:
			enc.AddBool(e.Label, v)
		case string:
			enc.AddString(e.Label, v)
		case fmt.Stringer:
			enc.AddString(e.Label, v.String())
		default:
			if err := enc.AddReflected(e.Label, v); err != nil {
				return fmt.Errorf("encode %q: %w", e.Label, err)
			}
		}
	}
	return nil
}

func (c *Configuration) checkWritable(key Identifier) {
	if c.readOnly {
		violate(key, "write to read-only configuration")
	}
}

func isNilKey(key Identifier) bool {
	if key == nil {
		return true
	}
	type nilChecker interface{ isNil() bool }
	if n, ok := key.(nilChecker); ok {
		return n.isNil()
	}
	return false
}

func (k *Key[T]) isNil() bool {
	return k == nil
}
