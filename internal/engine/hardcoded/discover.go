package hardcoded

import (
	"io/fs"
	"path/filepath"
	"strings"

	"i18nguard/internal/core/errors"

	"github.com/gobwas/glob"
)

// DiscoverFiles walks root depth-first and returns every file whose
// extension is listed. A directory is pruned when an exclude glob matches
// its base name or its slash-separated path relative to root. Walk errors
// abort discovery.
func DiscoverFiles(root string, excludeDirs, extensions []string) ([]string, error) {
	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "invalid exclude dir pattern"), errors.CtxPattern, p)
		}
		dirGlobs = append(dirGlobs, g)
	}

	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[ext] = true
	}

	files := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)
			base := filepath.Base(path)
			for _, g := range dirGlobs {
				if g.Match(base) || g.Match(rel) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if extSet[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "walk source tree"), errors.CtxPath, root)
	}
	return files, nil
}
