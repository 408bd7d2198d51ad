package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModuleKind selects how emitted code is wrapped for a module system.
type ModuleKind int

const (
	Plain ModuleKind = iota
	AMD
	CommonJS
	UMD
)

var moduleKindNames = map[ModuleKind]string{
	Plain:    "plain",
	AMD:      "amd",
	CommonJS: "commonjs",
	UMD:      "umd",
}

// ParseModuleKind accepts "plain", "amd", "commonjs" and "umd", ignoring case.
func ParseModuleKind(text string) (ModuleKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for kind, name := range moduleKindNames {
		if name == normalized {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModuleKind, text)
}

func (k ModuleKind) String() string {
	if name, ok := moduleKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ModuleKind(%d)", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModuleKind) UnmarshalText(text []byte) error {
	parsed, err := ParseModuleKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k ModuleKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k *ModuleKind) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return k.UnmarshalText([]byte(text))
}
