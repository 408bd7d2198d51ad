// Package compilerconfig provides typed configuration keys and the registry
// that pipeline phases use to exchange settings.
//
// A Key[T] is identified by the token allocated when it is declared, never by
// its display name, so two keys named "module kind" are unrelated slots. The
// registry (Configuration) only exposes generic accessors whose type
// parameter is bound to the key, which makes storing a value of the wrong
// type impossible to express.
//
// Missing values are not errors: GetBool resolves to false, GetList to an
// empty slice, and Get reports absence through its second result.
//
// A Configuration has a single owner. Branches that run concurrently must
// each work on their own Copy (or read-only Snapshot) taken before the
// branch starts.
package compilerconfig
