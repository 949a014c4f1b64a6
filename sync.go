package panelctl

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Excluded reports whether a path relative to the sync root is skipped by
// the exclusion patterns. A pattern matches any path component by name, so
// "venv" excludes the tree under any venv directory and "*.db" excludes
// database files at any depth.
func Excluded(rel string, patterns []string) bool {
	if rel == "." || rel == "" {
		return false
	}
	for _, component := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, pattern := range patterns {
			if ok, err := filepath.Match(pattern, component); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// SyncTree copies the tree rooted at src into dst, skipping excluded paths.
// Existing destination files are overwritten in place; files that have
// vanished from src are left behind. Regular files keep their source mode,
// symlinks are recreated.
func SyncTree(ctx context.Context, src, dst string, excludes []string) error {
	info, err := os.Stat(src)
	if err != nil {
		return &OpError{Op: "sync", Path: src, Err: err}
	}
	if !info.IsDir() {
		return &OpError{Op: "sync", Path: src, Err: fmt.Errorf("not a directory")}
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if Excluded(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		switch {
		case d.IsDir():
			return os.MkdirAll(target, DirMode)
		case d.Type()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		case d.Type().IsRegular():
			return copyFile(path, target)
		default:
			// Sockets, devices and the like have no business in a web app tree
			return nil
		}
	})
	if err != nil {
		return &OpError{Op: "sync", Path: dst, Err: err}
	}
	return nil
}

// copyFile copies src to dst preserving the source file mode
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// The destination may predate this sync with different permissions
	return os.Chmod(dst, info.Mode().Perm())
}

// copySymlink recreates the symlink src at dst
func copySymlink(src, dst string) error {
	linkTarget, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(linkTarget, dst)
}
