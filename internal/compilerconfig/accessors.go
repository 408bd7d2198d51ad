package compilerconfig

import "slices"

// Put stores value under key, replacing whatever was there before, including
// elements accumulated with Append. List and map values are copied, so later
// changes to value are not seen by the registry.
func Put[T any](c *Configuration, key *Key[T], value T) {
	mustKey(key)
	c.checkWritable(key)
	c.entries[key.id] = entry{key: key, value: cloneValue(value)}
}

// PutIfAbsent stores value only when key is unset and reports whether it did.
func PutIfAbsent[T any](c *Configuration, key *Key[T], value T) bool {
	if _, ok := stored(c, key); ok {
		return false
	}
	Put(c, key, value)
	return true
}

// Get returns the value stored under key and whether one was present. Lists
// and maps are returned as copies.
func Get[T any](c *Configuration, key *Key[T]) (T, bool) {
	return lookup(c, key)
}

// GetOr returns the value stored under key, or fallback when unset.
func GetOr[T any](c *Configuration, key *Key[T], fallback T) T {
	if v, ok := lookup(c, key); ok {
		return v
	}
	return fallback
}

// MustGet returns the value stored under key. It is meant for keys the caller
// has already established are set; an unset key panics with a
// *ContractViolation.
func MustGet[T any](c *Configuration, key *Key[T]) T {
	v, ok := lookup(c, key)
	if !ok {
		violate(key, "required value is not set")
	}
	return v
}

// GetBool returns the flag stored under key, false when unset.
func GetBool(c *Configuration, key *Key[bool]) bool {
	v, _ := lookup(c, key)
	return v
}

// GetList returns a copy of the list stored under key, or an empty list when
// unset. The result is never nil.
func GetList[T any](c *Configuration, key *Key[[]T]) []T {
	v, ok := lookup(c, key)
	if !ok || v == nil {
		return []T{}
	}
	return v
}

// Append adds value to the end of the list stored under key, starting a new
// list when unset.
func Append[T any](c *Configuration, key *Key[[]T], value T) {
	AppendAll(c, key, value)
}

// AppendAll adds values to the end of the list stored under key, in order.
func AppendAll[T any](c *Configuration, key *Key[[]T], values ...T) {
	mustKey(key)
	c.checkWritable(key)
	current, _ := stored(c, key)
	// Clip forces a fresh backing array: a list shared with a Copy is never
	// written through.
	c.entries[key.id] = entry{key: key, value: append(slices.Clip(current), values...)}
}

// lookup is the read path handed to callers: stored values never escape
// without being copied.
func lookup[T any](c *Configuration, key *Key[T]) (T, bool) {
	v, ok := stored(c, key)
	if !ok {
		return v, false
	}
	return cloneValue(v), true
}

// stored is the only place a stored value is asserted to its key type.
func stored[T any](c *Configuration, key *Key[T]) (T, bool) {
	mustKey(key)
	var zero T
	e, ok := c.entries[key.id]
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		violate(key, "stored value has type %T", e.value)
	}
	return v, true
}

func mustKey[T any](key *Key[T]) {
	if key == nil {
		violate(nil, "nil key")
	}
}
