package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyTree recursively copies every file and subdirectory under src into
// dst, creating destination directories on demand. It reports (false, nil)
// without copying when src does not exist, so callers can treat a missing
// asset category as a warning rather than a failure.
func CopyTree(src, dst string) (bool, error) {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", src)
	}

	err = filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
	if err != nil {
		return false, fmt.Errorf("copying %s: %w", src, err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
