package compilerconfig

import "fmt"

// ContractViolation is the panic value raised when calling code breaks the
// registry contract: writing to a read-only snapshot, using a nil key,
// requiring a value that was never set, or a stored value whose dynamic type
// disagrees with its key. It signals a defect in the caller and is never
// returned as an error.
type ContractViolation struct {
	Key    string
	Reason string
}

func (v *ContractViolation) Error() string {
	if v.Key == "" {
		return fmt.Sprintf("compilerconfig: %s", v.Reason)
	}
	return fmt.Sprintf("compilerconfig: key %q: %s", v.Key, v.Reason)
}

func violate(key Identifier, format string, args ...any) {
	v := &ContractViolation{Reason: fmt.Sprintf(format, args...)}
	if key != nil {
		v.Key = key.Name()
	}
	panic(v)
}
