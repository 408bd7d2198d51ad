package compilerconfig

import "reflect"

// cloneValue copies the top level of slices and maps so that Copy, Snapshot
// and every reader can share stored entries without sharing mutable storage.
// Other values are returned unchanged.
func cloneValue[T any](v T) T {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface().(T)
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface().(T)
	}
	return v
}
