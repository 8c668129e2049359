// Package driver orchestrates formatting across files: it collects shell
// scripts from paths, formats them in parallel, applies the requested
// write policy and keeps a disk cache of files already known clean.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectScripts expands the argument list into a sorted, deduplicated set
// of script files. Files named explicitly are always taken, whatever their
// extension; directories are walked recursively for .sh and .bash files.
func collectScripts(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isScriptName(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func isScriptName(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sh", ".bash":
		return true
	}
	return false
}
