package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/compilerconf/internal/catalog"
	"github.com/eugenenazirov/compilerconf/internal/compilerconfig"
)

const (
	defaultModuleName = "main"
	defaultOutputDir  = "out"

	envPrefix = "COMPILERCONF_"
)

// settings is the resolved view of every source before it is written into a
// registry.
type settings struct {
	Target                  catalog.EcmaVersion
	ModuleKind              catalog.ModuleKind
	SourceMap               bool
	MetaInfo                bool
	TypedArrays             bool
	SkipRuntimeVersionCheck bool
	ModuleName              string
	OutputDir               string
	Libraries               []string
	SourceRoots             []string
}

// yamlConfig represents the build settings file. Pointers distinguish an
// explicit false from an absent field.
type yamlConfig struct {
	Target                  *catalog.EcmaVersion `yaml:"target"`
	ModuleKind              *catalog.ModuleKind  `yaml:"module_kind"`
	SourceMap               *bool                `yaml:"source_map"`
	MetaInfo                *bool                `yaml:"meta_info"`
	TypedArrays             *bool                `yaml:"typed_arrays"`
	SkipRuntimeVersionCheck *bool                `yaml:"skip_runtime_version_check"`
	ModuleName              string               `yaml:"module_name"`
	OutputDir               string               `yaml:"output_dir"`
	Libraries               []string             `yaml:"libraries"`
	SourceRoots             []string             `yaml:"source_roots"`
}

// CLIOverrides holds command-line flag overrides. Nil pointers mean the flag
// was not given.
type CLIOverrides struct {
	ConfigFile              string
	Target                  *string
	ModuleKind              *string
	SourceMap               *bool
	MetaInfo                *bool
	TypedArrays             *bool
	SkipRuntimeVersionCheck *bool
	ModuleName              *string
	OutputDir               *string
	Libraries               []string
	SourceRoots             []string
}

// Load resolves configuration from multiple sources and writes it into a
// fresh registry. Scalars follow the precedence
// CLI flags > YAML build settings > environment variables > defaults.
// Library paths and source roots accumulate in that order instead, with the
// environment first and CLI flags last.
func Load(overrides *CLIOverrides) (*compilerconfig.Configuration, error) {
	s := defaultSettings()

	if err := applyEnvConfig(&s); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&s, yamlCfg)
	}

	if overrides != nil {
		if err := applyCLIOverrides(&s, overrides); err != nil {
			return nil, err
		}
	}

	if err := validateSettings(s); err != nil {
		return nil, err
	}

	cfg := compilerconfig.New()
	s.populate(cfg)
	return cfg, nil
}

func defaultSettings() settings {
	return settings{
		Target:     catalog.DefaultEcmaVersion(),
		ModuleKind: catalog.Plain,
		ModuleName: defaultModuleName,
		OutputDir:  defaultOutputDir,
	}
}

// populate writes the settings through the catalog keys. Flags that resolved
// to false are left unset; readers see false either way.
func (s settings) populate(cfg *compilerconfig.Configuration) {
	compilerconfig.Put(cfg, catalog.Target, s.Target)
	compilerconfig.Put(cfg, catalog.ModuleKindKey, s.ModuleKind)
	compilerconfig.Put(cfg, catalog.ModuleName, s.ModuleName)
	compilerconfig.Put(cfg, catalog.OutputDir, s.OutputDir)

	putFlag(cfg, catalog.SourceMap, s.SourceMap)
	putFlag(cfg, catalog.MetaInfo, s.MetaInfo)
	putFlag(cfg, catalog.TypedArrays, s.TypedArrays)
	putFlag(cfg, catalog.SkipRuntimeVersionCheck, s.SkipRuntimeVersionCheck)

	for _, lib := range s.Libraries {
		compilerconfig.Append(cfg, catalog.Libraries, lib)
	}
	for _, root := range s.SourceRoots {
		compilerconfig.Append(cfg, catalog.SourceRoots, root)
	}
}

func putFlag(cfg *compilerconfig.Configuration, key *compilerconfig.Key[bool], value bool) {
	if value {
		compilerconfig.Put(cfg, key, true)
	}
}

// loadFromFile loads build settings from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, catalog.ErrUnknownEcmaVersion) || errors.Is(err, catalog.ErrUnknownModuleKind) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
		}
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies build settings on top of the current values.
func applyYAMLConfig(s *settings, yamlCfg *yamlConfig) {
	if yamlCfg.Target != nil {
		s.Target = *yamlCfg.Target
	}
	if yamlCfg.ModuleKind != nil {
		s.ModuleKind = *yamlCfg.ModuleKind
	}
	applyFlag(&s.SourceMap, yamlCfg.SourceMap)
	applyFlag(&s.MetaInfo, yamlCfg.MetaInfo)
	applyFlag(&s.TypedArrays, yamlCfg.TypedArrays)
	applyFlag(&s.SkipRuntimeVersionCheck, yamlCfg.SkipRuntimeVersionCheck)

	if yamlCfg.ModuleName != "" {
		s.ModuleName = yamlCfg.ModuleName
	}
	if yamlCfg.OutputDir != "" {
		s.OutputDir = yamlCfg.OutputDir
	}

	s.Libraries = append(s.Libraries, yamlCfg.Libraries...)
	s.SourceRoots = append(s.SourceRoots, yamlCfg.SourceRoots...)
}

// applyEnvConfig applies environment variable configuration. Malformed values
// are rejected rather than skipped.
func applyEnvConfig(s *settings) error {
	if raw := lookupEnv("TARGET"); raw != "" {
		target, err := catalog.ParseEcmaVersion(raw)
		if err != nil {
			return fmt.Errorf("%w: %sTARGET: %w", ErrInvalidSetting, envPrefix, err)
		}
		s.Target = target
	}

	if raw := lookupEnv("MODULE_KIND"); raw != "" {
		kind, err := catalog.ParseModuleKind(raw)
		if err != nil {
			return fmt.Errorf("%w: %sMODULE_KIND: %w", ErrInvalidSetting, envPrefix, err)
		}
		s.ModuleKind = kind
	}

	for name, dst := range map[string]*bool{
		"SOURCE_MAP":                 &s.SourceMap,
		"META_INFO":                  &s.MetaInfo,
		"TYPED_ARRAYS":               &s.TypedArrays,
		"SKIP_RUNTIME_VERSION_CHECK": &s.SkipRuntimeVersionCheck,
	} {
		raw := lookupEnv(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %q is not a boolean", ErrInvalidSetting, envPrefix, name, raw)
		}
		*dst = value
	}

	if name := lookupEnv("MODULE_NAME"); name != "" {
		s.ModuleName = name
	}
	if dir := lookupEnv("OUTPUT_DIR"); dir != "" {
		s.OutputDir = dir
	}

	s.Libraries = append(s.Libraries, splitPathList(lookupEnv("LIBRARIES"))...)
	s.SourceRoots = append(s.SourceRoots, splitPathList(lookupEnv("SOURCE_ROOTS"))...)

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(s *settings, overrides *CLIOverrides) error {
	if overrides.Target != nil && *overrides.Target != "" {
		target, err := catalog.ParseEcmaVersion(*overrides.Target)
		if err != nil {
			return fmt.Errorf("%w: --target: %w", ErrInvalidSetting, err)
		}
		s.Target = target
	}

	if overrides.ModuleKind != nil && *overrides.ModuleKind != "" {
		kind, err := catalog.ParseModuleKind(*overrides.ModuleKind)
		if err != nil {
			return fmt.Errorf("%w: --module-kind: %w", ErrInvalidSetting, err)
		}
		s.ModuleKind = kind
	}

	applyFlag(&s.SourceMap, overrides.SourceMap)
	applyFlag(&s.MetaInfo, overrides.MetaInfo)
	applyFlag(&s.TypedArrays, overrides.TypedArrays)
	applyFlag(&s.SkipRuntimeVersionCheck, overrides.SkipRuntimeVersionCheck)

	if overrides.ModuleName != nil && *overrides.ModuleName != "" {
		s.ModuleName = *overrides.ModuleName
	}
	if overrides.OutputDir != nil && *overrides.OutputDir != "" {
		s.OutputDir = *overrides.OutputDir
	}

	s.Libraries = append(s.Libraries, overrides.Libraries...)
	s.SourceRoots = append(s.SourceRoots, overrides.SourceRoots...)

	return nil
}

// validateSettings validates the final settings.
func validateSettings(s settings) error {
	if strings.TrimSpace(s.ModuleName) == "" {
		return fmt.Errorf("%w: module name cannot be empty", ErrInvalidSetting)
	}
	if strings.ContainsAny(s.ModuleName, `/\`) {
		return fmt.Errorf("%w: module name %q must not contain path separators", ErrInvalidSetting, s.ModuleName)
	}
	for _, lib := range s.Libraries {
		if strings.TrimSpace(lib) == "" {
			return fmt.Errorf("%w: library path cannot be empty", ErrInvalidSetting)
		}
	}
	for _, root := range s.SourceRoots {
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("%w: source root cannot be empty", ErrInvalidSetting)
		}
	}
	return nil
}

func applyFlag(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

func lookupEnv(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

// splitPathList splits an OS path list, dropping empty segments.
func splitPathList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, string(os.PathListSeparator))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
