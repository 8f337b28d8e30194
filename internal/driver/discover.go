package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoredDirs are directories never entered while walking.
var IgnoredDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	"__pycache__":   true,
	"venv":          true,
	".venv":         true,
	".env":          true,
	".tox":          true,
	".nox":          true,
	".eggs":         true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	"node_modules":  true,
	"build":         true,
	"dist":          true,
}

// DiscoverOptions controls the directory walk.
type DiscoverOptions struct {
	// Exclude: шаблоны в синтаксисе .gitignore, относительно корня обхода.
	Exclude []string
	// RespectGitignore включает чтение .gitignore в каждом каталоге.
	RespectGitignore bool
}

// Discover expands paths into the list of files to check. Files named
// explicitly are kept as is, whatever their extension; directories are walked
// for *.py files. Each directory's files come out sorted; the order of the
// arguments is preserved and duplicates are dropped.
func Discover(paths []string, opts DiscoverOptions) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// ошибку чтения покажет загрузка файла
			add(p)
			continue
		}
		files, err := walkPython(p, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// walkPython returns the sorted *.py files under root.
func walkPython(root string, opts DiscoverOptions) ([]string, error) {
	var exclude *ignore.GitIgnore
	if len(opts.Exclude) > 0 {
		exclude = ignore.CompileIgnoreLines(opts.Exclude...)
	}
	// каталог -> его .gitignore (nil, если файла нет)
	gitignores := make(map[string]*ignore.GitIgnore)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && d.IsDir() && IgnoredDirs[d.Name()] {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if path != root && exclude != nil && exclude.MatchesPath(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if opts.RespectGitignore && path != root && ignoredByGitignore(root, path, gitignores) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if opts.RespectGitignore {
				gitignores[path] = loadGitignore(path)
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// ignoredByGitignore проверяет path по .gitignore всех каталогов от root до
// родителя path.
func ignoredByGitignore(root, path string, gitignores map[string]*ignore.GitIgnore) bool {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if gi := gitignores[dir]; gi != nil {
			rel, err := filepath.Rel(dir, path)
			if err == nil && gi.MatchesPath(filepath.ToSlash(rel)) {
				return true
			}
		}
		if dir == root || dir == filepath.Dir(dir) {
			return false
		}
	}
}

// loadGitignore loads .gitignore from dir if it exists.
func loadGitignore(dir string) *ignore.GitIgnore {
	p := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	// нечитаемый .gitignore не должен ломать прогон
	if gi, err := ignore.CompileIgnoreFile(p); err == nil {
		return gi
	}
	return nil
}
