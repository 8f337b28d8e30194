// Package config читает stylecheck.toml.
//
// Файл ищется от стартового каталога вверх до корня файловой системы; первый
// найденный побеждает. Незаданные ключи берутся из Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// FileName is the manifest file looked up by Find.
const FileName = "stylecheck.toml"

// Config is the decoded stylecheck.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
}

// CheckConfig: секция [check].
type CheckConfig struct {
	Format           string   `toml:"format" validate:"oneof=short pretty json sarif"`
	Color            string   `toml:"color" validate:"oneof=auto on off"`
	Jobs             int      `toml:"jobs" validate:"gte=0,lte=1024"`
	MaxDiagnostics   int      `toml:"max_diagnostics" validate:"gte=0"`
	Exclude          []string `toml:"exclude" validate:"dive,required"`
	RespectGitignore bool     `toml:"respect_gitignore"`
	Cache            bool     `toml:"cache"`
	PathMode         string   `toml:"path_mode" validate:"oneof=auto absolute relative basename"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Check: CheckConfig{
			Format:           "short",
			Color:            "auto",
			Exclude:          []string{},
			RespectGitignore: true,
			Cache:            true,
			PathMode:         "auto",
		},
	}
}

// Manifest: найденный файл конфигурации.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir looking for stylecheck.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and reads the manifest. ok is false when there is no file; the
// returned manifest then carries Default.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadFile decodes path over Default and validates the result.
// Unknown keys are errors.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe переводит ошибку валидатора в имя ключа TOML.
func describe(fe validator.FieldError) string {
	key := tomlKey(fe.StructNamespace())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of: %s", key, fmt.Sprint(fe.Value()), fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be >= %s", key, fe.Param())
	case "lte":
		return fmt.Sprintf("%s: must be <= %s", key, fe.Param())
	case "required":
		return fmt.Sprintf("%s: must not be empty", key)
	}
	return fmt.Sprintf("%s: failed %q check", key, fe.Tag())
}

var tomlKeys = map[string]string{
	"Check":            "check",
	"Format":           "format",
	"Color":            "color",
	"Jobs":             "jobs",
	"MaxDiagnostics":   "max_diagnostics",
	"Exclude":          "exclude",
	"RespectGitignore": "respect_gitignore",
	"Cache":            "cache",
	"PathMode":         "path_mode",
}

// Config.Check.Exclude[1] -> check.exclude[1]
func tomlKey(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, p := range parts {
		name, idx, _ := strings.Cut(p, "[")
		if k, ok := tomlKeys[name]; ok {
			name = k
		}
		if idx != "" {
			name += "[" + idx
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}
