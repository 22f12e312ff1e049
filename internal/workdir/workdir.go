// Package workdir finds the directory whose .shelf folder holds the catalog.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// RootFile redirects the catalog to another directory; its content is a
	// path, relative to the file's directory or absolute
	RootFile = ".shelf-root"
	// DataDir is the per-catalog folder holding config.toml and catalog.db
	DataDir = ".shelf"
)

// ResolveBaseDir picks the catalog root for a command run in start:
//  1. a .shelf-root file in start or an ancestor, nearest first
//  2. the nearest of start and its ancestors holding a .shelf directory
//  3. the git top level, if it holds either marker
//
// Without a marker, start itself is returned so a new catalog is created
// there.
func ResolveBaseDir(start string) string {
	if start == "" {
		return start
	}
	start = filepath.Clean(start)

	for dir := start; ; {
		if resolved, ok := readRootFile(dir); ok {
			return resolved
		}
		if hasDataDir(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if top, err := gitTopLevel(start); err == nil && top != "" {
		top = filepath.Clean(top)
		if resolved, ok := readRootFile(top); ok {
			return resolved
		}
		if hasDataDir(top) {
			return top
		}
	}
	return start
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, RootFile))
	if err != nil {
		return "", false
	}
	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return "", false
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	return filepath.Clean(resolved), true
}

func hasDataDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, DataDir))
	return err == nil && fi.IsDir()
}

// gitTopLevel covers worktrees and submodules whose .shelf lives outside the
// plain parent chain
func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
