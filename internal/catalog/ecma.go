package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EcmaVersion selects the syntax level emitted by the JavaScript backend.
type EcmaVersion int

const (
	ES3 EcmaVersion = iota + 3
	ES5             = ES3 + 2
	ES6             = ES5 + 1
)

// DefaultEcmaVersion is the target used when none is configured.
func DefaultEcmaVersion() EcmaVersion {
	return ES5
}

// ParseEcmaVersion accepts "v3", "es3", "v5", "es5", "v6", "es6" and "es2015",
// ignoring case and surrounding whitespace.
func ParseEcmaVersion(text string) (EcmaVersion, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "v3", "es3":
		return ES3, nil
	case "v5", "es5":
		return ES5, nil
	case "v6", "es6", "es2015":
		return ES6, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEcmaVersion, text)
}

func (v EcmaVersion) String() string {
	switch v {
	case ES3:
		return "es3"
	case ES5:
		return "es5"
	case ES6:
		return "es6"
	}
	return fmt.Sprintf("EcmaVersion(%d)", int(v))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *EcmaVersion) UnmarshalText(text []byte) error {
	parsed, err := ParseEcmaVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v EcmaVersion) MarshalYAML() (any, error) {
	return v.String(), nil
}

func (v *EcmaVersion) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v.UnmarshalText([]byte(text))
}
