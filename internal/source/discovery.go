package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/henrykdz/pathment/internal/common"
)

// Discover expands args into a sorted, duplicate-free list of files.
// An argument may name a file, a directory (walked recursively) or a
// doublestar glob. Include patterns apply to files found while walking
// directories; exclude patterns apply everywhere.
func Discover(args []string, include, exclude []string) ([]string, error) {
	for _, pattern := range append(slices.Clone(include), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, common.NewValidationError("pattern", pattern, "invalid glob pattern")
		}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			found, walkErr := walkDir(arg, include, exclude)
			if walkErr != nil {
				return nil, walkErr
			}
			for _, f := range found {
				add(f)
			}
		case err == nil:
			if !matchesAny(exclude, filepath.ToSlash(arg)) {
				add(arg)
			}
		default:
			matches, globErr := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if globErr != nil {
				return nil, common.WrapErrorf(globErr, "failed to expand %s", arg)
			}
			if len(matches) == 0 {
				return nil, common.NewInputError(arg, "no such file or matching glob", common.ErrNotFound)
			}
			for _, m := range matches {
				if !matchesAny(exclude, filepath.ToSlash(m)) {
					add(m)
				}
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

func walkDir(root string, include, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if rel != "." && matchesAny(exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(include) > 0 && !matchesAny(include, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to walk %s", root)
	}
	return files, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
