package tabs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileTabStartsSaved(t *testing.T) {
	tab := NewFileTab("hello", "", FileTabOptions{})
	if !tab.Saved() {
		t.Fatal("a fresh tab should count as saved")
	}
	if got := tab.Title(); got != "New File" {
		t.Fatalf("title = %q", got)
	}
}

func TestFileTabTitleStarsUnsavedChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	tab, err := OpenFile(path, FileTabOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.Title(); got != "notes.txt" {
		t.Fatalf("title = %q", got)
	}

	tab.Buffer().Insert(0, 5, "!")
	if tab.Saved() {
		t.Fatal("edit should mark the tab unsaved")
	}
	if got := tab.Title(); got != "*notes.txt*" {
		t.Fatalf("title = %q", got)
	}

	tab.Buffer().Delete(0, 5, 0, 6)
	if !tab.Saved() {
		t.Fatal("undoing the edit by hand should compare saved again")
	}
}

func TestFileTabSaveWithoutPath(t *testing.T) {
	tab := NewFileTab("content", "", FileTabOptions{})
	if err := tab.Save(); !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestFileTabSaveAndSaveAs(t *testing.T) {
	dir := t.TempDir()
	tab := NewFileTab("first line\nsecond", "", FileTabOptions{})
	tab.Buffer().Insert(0, 0, "! ")
	if tab.Saved() {
		t.Fatal("expected unsaved")
	}

	path := filepath.Join(dir, "out.txt")
	if err := tab.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if !tab.Saved() {
		t.Fatal("save should mark the tab saved")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "! first line\nsecond" {
		t.Fatalf("file content = %q", raw)
	}
	if tab.Path() != path {
		t.Fatalf("path = %q, want %q", tab.Path(), path)
	}
}

func TestFileTabSaveUsesEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin.txt")
	tab := NewFileTab("café", path, FileTabOptions{Encoding: func() string { return "latin1" }})
	if err := tab.Save(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "caf\xe9" {
		t.Fatalf("file bytes = %q, want latin-1 caf\\xe9", raw)
	}
}

func TestFileTabSetPathRedetectsFiletype(t *testing.T) {
	filetypes := []Filetype{
		{Name: "Go", Patterns: []string{"*.go"}},
		{Name: "Markdown", Patterns: []string{"*.md"}},
	}
	tab := NewFileTab("", "", FileTabOptions{Filetypes: filetypes})
	if got := tab.Filetype().Name; got != "Plain Text" {
		t.Fatalf("filetype = %q", got)
	}

	changes := 0
	tab.OnFiletypeChange(func() { changes++ })
	tab.SetPath("main.go")
	if got := tab.Filetype().Name; got != "Go" {
		t.Fatalf("filetype = %q, want Go", got)
	}
	if changes != 1 {
		t.Fatalf("filetype change fired %d times, want 1", changes)
	}

	// same file spelled differently is not a path change
	pathChanges := 0
	tab.OnPathChange(func() { pathChanges++ })
	tab.SetPath("./main.go")
	if pathChanges != 0 {
		t.Fatalf("cleaned-equal path fired %d change notifications", pathChanges)
	}
}

func TestFileTabTokensClearOnEdit(t *testing.T) {
	tab := NewFileTab("alpha beta", "", FileTabOptions{})
	tab.SetTokens([]string{"alpha", "beta"})
	if len(tab.Tokens()) != 2 {
		t.Fatal("tokens not stored")
	}
	tab.SetTokens(nil) // ignored
	if len(tab.Tokens()) != 2 {
		t.Fatal("empty token set should be ignored")
	}
	tab.Buffer().Insert(0, 0, "x")
	if tab.Tokens() != nil {
		t.Fatal("edit should clear the token cache")
	}
}

func TestFileTabCursorClamped(t *testing.T) {
	tab := NewFileTab("ab\ncd", "", FileTabOptions{})
	tab.SetCursor(10, 10)
	row, col := tab.Cursor()
	if row != 1 || col != 2 {
		t.Fatalf("cursor = (%d,%d), want (1,2)", row, col)
	}
}

func TestFileTabCanClose(t *testing.T) {
	saved := NewFileTab("x", "", FileTabOptions{})
	if !saved.CanClose() {
		t.Fatal("saved tab should close freely")
	}

	noDecider := NewFileTab("x", "", FileTabOptions{})
	noDecider.Buffer().Insert(0, 0, "y")
	if noDecider.CanClose() {
		t.Fatal("unsaved tab without a decider must refuse to close")
	}

	answer := CloseCancel
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	tab := NewFileTab("x", path, FileTabOptions{
		ConfirmClose: func(*FileTab) CloseAnswer { return answer },
	})
	tab.Buffer().Insert(0, 0, "y")

	if tab.CanClose() {
		t.Fatal("cancel should block the close")
	}
	answer = CloseDiscard
	if !tab.CanClose() {
		t.Fatal("discard should allow the close")
	}
	answer = CloseSave
	if !tab.CanClose() {
		t.Fatal("save should allow the close when the write succeeds")
	}
	if !tab.Saved() {
		t.Fatal("close-by-save should leave the tab saved")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "yx") {
		t.Fatalf("file content = %q", raw)
	}
}

func TestFileTabEquivalentByFileIdentity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewFileTab("data", path, FileTabOptions{})
	b := NewFileTab("data", filepath.Join(dir, ".", "file.txt"), FileTabOptions{})
	if !a.Equivalent(b) {
		t.Fatal("two tabs on the same file should be equivalent")
	}

	other := NewFileTab("data", filepath.Join(dir, "missing.txt"), FileTabOptions{})
	if a.Equivalent(other) {
		t.Fatal("a missing file is not equivalent to anything")
	}

	pathless := NewFileTab("data", "", FileTabOptions{})
	if a.Equivalent(pathless) || pathless.Equivalent(pathless) {
		t.Fatal("pathless tabs are never equivalent")
	}

	text := NewTextTab("t", "", "")
	if a.Equivalent(text) {
		t.Fatal("a file tab is never equivalent to a text tab")
	}
}

func TestFileTabStatusLine(t *testing.T) {
	tab := NewFileTab("hello\nworld", "", FileTabOptions{})
	tab.SetCursor(1, 3)
	got := tab.Status()
	if !strings.Contains(got, "New file") || !strings.Contains(got, "Line 2, Column 3") {
		t.Fatalf("status = %q", got)
	}
}
