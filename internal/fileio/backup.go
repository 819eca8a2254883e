// Package fileio provides the scoped backup-write used when overwriting
// user files: the destination is never left partially written relative to
// its previous good state.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// backupPath picks an unused sibling name by inserting "-backup" before
// the extension until the name is free.
func backupPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for {
		if _, err := os.Stat(stem + ext); os.IsNotExist(err) {
			return stem + ext
		}
		stem += "-backup"
	}
}

func copyFile(src, dst string) error {
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

// BackupWrite streams write's output to path. If path already exists it
// is copied aside first; any failure restores the copy and returns the
// original error, and success deletes it.
func BackupWrite(path string, write func(w io.Writer) error) error {
	backup := ""
	if _, err := os.Stat(path); err == nil {
		backup = backupPath(path)
		if err := copyFile(path, backup); err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
	}

	err := writeTo(path, write)
	if err != nil {
		if backup != "" {
			if restoreErr := os.Rename(backup, path); restoreErr != nil {
				return fmt.Errorf("restore %s after failed write: %v (write error: %w)", path, restoreErr, err)
			}
		}
		return err
	}

	if backup != "" {
		if err := os.Remove(backup); err != nil {
			return fmt.Errorf("remove backup %s: %w", backup, err)
		}
	}
	return nil
}

func writeTo(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
