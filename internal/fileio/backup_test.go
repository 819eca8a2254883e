package fileio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestBackupWriteCreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	err := BackupWrite(path, func(w io.Writer) error {
		_, err := w.Write([]byte("fresh"))
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "fresh" {
		t.Fatalf("content = %q", raw)
	}
}

func TestBackupWriteOverwritesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := BackupWrite(path, func(w io.Writer) error {
		_, err := w.Write([]byte("new"))
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "new" {
		t.Fatalf("content = %q", raw)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc-backup.txt")); !os.IsNotExist(err) {
		t.Fatal("backup should be removed after a successful write")
	}
}

func TestBackupWriteRestoresOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("precious"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("disk full")
	err := BackupWrite(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial garbage"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the write error", err)
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(raw) != "precious" {
		t.Fatalf("content after failed write = %q, want the original", raw)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc-backup.txt")); !os.IsNotExist(err) {
		t.Fatal("backup should be consumed by the restore")
	}
}

func TestBackupPathProbesUntilFree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got, want := backupPath(path), filepath.Join(dir, "doc-backup.txt"); got != want {
		t.Fatalf("backup path = %q, want %q", got, want)
	}

	if err := os.WriteFile(filepath.Join(dir, "doc-backup.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got, want := backupPath(path), filepath.Join(dir, "doc-backup-backup.txt"); got != want {
		t.Fatalf("backup path = %q, want %q", got, want)
	}
}
