package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const templateHeader = `# stylecheck configuration.
# format: short | pretty | json | sarif
# color: auto | on | off
# jobs: parallel files, 0 = number of CPUs
# max_diagnostics: per file, 0 = unlimited
# exclude: .gitignore-style patterns, relative to each checked directory
# path_mode: auto | absolute | relative | basename

`

// WriteTemplate writes Default as a commented stylecheck.toml.
func WriteTemplate(w io.Writer) error {
	if _, err := io.WriteString(w, templateHeader); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(Default())
}

// ErrExists is returned by Init when the file is already there.
var ErrExists = errors.New(FileName + " already exists")

// Init creates dir/stylecheck.toml. An existing file is kept unless force.
func Init(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	// #nosec G304 -- path is built from the caller's directory
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, fmt.Errorf("%s: %w", path, ErrExists)
		}
		return path, err
	}
	if err := WriteTemplate(f); err != nil {
		_ = f.Close()
		return path, err
	}
	return path, f.Close()
}
