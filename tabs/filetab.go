package tabs

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/quillpad/quill/internal/fileio"
)

// Content is digested in fixed-size line chunks so a full second copy of
// the buffer never has to be held. The chunk size is not semantically
// meaningful.
const digestChunkLines = 100

// ErrNoPath is returned by Save on a tab that has never been given a
// path; callers run their save-as flow and retry.
var ErrNoPath = errors.New("file tab has no path")

// CloseAnswer is the outcome of an unsaved-changes prompt.
type CloseAnswer int

const (
	CloseCancel CloseAnswer = iota
	CloseSave
	CloseDiscard
)

// FileTabOptions carries the collaborators a FileTab needs. All fields
// are optional.
type FileTabOptions struct {
	// Encoding names the encoding used for file bytes and digests.
	// Defaults to UTF-8.
	Encoding func() string
	// ConfirmClose decides what to do with unsaved changes when the tab
	// is asked whether it can close. With no decider, an unsaved tab
	// refuses to close.
	ConfirmClose func(*FileTab) CloseAnswer
	// Filetypes is the classification table for paths.
	Filetypes []Filetype
	// Focus runs when the tab gains focus.
	Focus func(*FileTab)
}

// FileTab is a file-backed editor tab: an optional filesystem path (empty
// means an unsaved new file), a text buffer, and the digest of the content
// as of the last save.
type FileTab struct {
	id   string
	opts FileTabOptions

	path  string
	buf   *Buffer
	ftype Filetype

	saveDigest string
	tokens     []string

	cursorRow int
	cursorCol int

	pathWatchers     []func()
	filetypeWatchers []func()
}

func NewFileTab(content, path string, opts FileTabOptions) *FileTab {
	t := &FileTab{
		id:   uuid.NewString(),
		opts: opts,
		path: path,
	}
	t.buf = NewBuffer(content)
	// edits invalidate the token cache
	t.buf.Watch(func() { t.tokens = nil })
	if path != "" {
		t.ftype = MatchFiletype(opts.Filetypes, path)
	} else {
		t.ftype = PlainText()
	}
	t.MarkSaved()
	return t
}

// OpenFile reads path and returns a new tab for it.
func OpenFile(path string, opts FileTabOptions) (*FileTab, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	encName := encodingName(opts.Encoding)
	enc, err := LookupEncoding(encName)
	if err != nil {
		return nil, err
	}
	content, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", path, encName, err)
	}
	return NewFileTab(string(content), path, opts), nil
}

func encodingName(f func() string) string {
	if f == nil {
		return "UTF-8"
	}
	return f()
}

func (t *FileTab) ID() string      { return t.id }
func (t *FileTab) Buffer() *Buffer { return t.buf }

func (t *FileTab) Title() string {
	title := "New File"
	if t.path != "" {
		title = filepath.Base(t.path)
	}
	if !t.Saved() {
		title = "*" + title + "*"
	}
	return title
}

func (t *FileTab) Status() string {
	prefix := "New file"
	if t.path != "" {
		prefix = fmt.Sprintf("File '%s'", t.path)
	}
	return fmt.Sprintf("%s, %s  Line %d, Column %d",
		prefix, t.ftype.Name, t.cursorRow+1, t.cursorCol)
}

func (t *FileTab) Path() string { return t.path }

// SetPath changes the path, notifying path watchers when it actually
// changes. The filetype is re-derived from the new name.
func (t *FileTab) SetPath(path string) {
	old := t.path
	t.path = path
	changed := old != path
	if old != "" && path != "" {
		changed = filepath.Clean(old) != filepath.Clean(path)
	}
	if !changed {
		return
	}
	for _, fn := range t.pathWatchers {
		fn()
	}
	if path != "" {
		t.SetFiletype(MatchFiletype(t.opts.Filetypes, path))
	}
}

func (t *FileTab) Filetype() Filetype { return t.ftype }

func (t *FileTab) SetFiletype(ft Filetype) {
	if ft.Name == t.ftype.Name {
		t.ftype = ft
		return
	}
	t.ftype = ft
	for _, fn := range t.filetypeWatchers {
		fn()
	}
}

func (t *FileTab) OnPathChange(fn func())     { t.pathWatchers = append(t.pathWatchers, fn) }
func (t *FileTab) OnFiletypeChange(fn func()) { t.filetypeWatchers = append(t.filetypeWatchers, fn) }

// Tokens returns the cached token list from the last tokenizer run. The
// cache is cleared on every edit.
func (t *FileTab) Tokens() []string { return t.tokens }

// SetTokens stores the tokenizer result. An empty result is ignored.
func (t *FileTab) SetTokens(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	t.tokens = tokens
}

func (t *FileTab) Cursor() (row, col int) { return t.cursorRow, t.cursorCol }

func (t *FileTab) SetCursor(row, col int) {
	t.cursorRow, t.cursorCol = t.buf.clamp(row, col)
}

func (t *FileTab) digest() string {
	enc := resolveEncoding(encodingName(t.opts.Encoding))
	sum := md5.New()
	for _, chunk := range t.buf.Chunks(digestChunkLines) {
		sum.Write(encodeChunk(enc, chunk))
	}
	return hex.EncodeToString(sum.Sum(nil))
}

// MarkSaved records the digest of the current content as the on-disk
// state.
func (t *FileTab) MarkSaved() {
	t.saveDigest = t.digest()
}

// Saved reports whether the content still matches the last MarkSaved. The
// digest is recomputed fresh on every call; queries happen at user
// interaction rate, so that beats keeping a second copy of the buffer.
func (t *FileTab) Saved() bool {
	return t.digest() == t.saveDigest
}

// Save writes the buffer to the tab's path with a backup in place, then
// records the new saved digest. A tab without a path returns ErrNoPath. A
// failed write leaves both the file's previous content and the tab's
// dirty state intact.
func (t *FileTab) Save() error {
	if t.path == "" {
		return ErrNoPath
	}
	enc := resolveEncoding(encodingName(t.opts.Encoding))
	err := fileio.BackupWrite(t.path, func(w io.Writer) error {
		for _, chunk := range t.buf.Chunks(digestChunkLines) {
			if _, err := w.Write(encodeChunk(enc, chunk)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", t.path, err)
	}
	t.MarkSaved()
	return nil
}

// SaveAs points the tab at a new path and saves there.
func (t *FileTab) SaveAs(path string) error {
	t.SetPath(path)
	return t.Save()
}

// CanClose allows closing a saved tab outright; unsaved changes go
// through the ConfirmClose decider, which may trigger a save.
func (t *FileTab) CanClose() bool {
	if t.Saved() {
		return true
	}
	if t.opts.ConfirmClose == nil {
		return false
	}
	switch t.opts.ConfirmClose(t) {
	case CloseSave:
		return t.Save() == nil
	case CloseDiscard:
		return true
	default:
		return false
	}
}

func (t *FileTab) OnFocus() {
	if t.opts.Focus != nil {
		t.opts.Focus(t)
	}
}

// Equivalent reports whether other is a FileTab saved to the same file,
// by filesystem identity rather than string comparison. Two pathless tabs
// are never equivalent, whatever their content.
func (t *FileTab) Equivalent(other Tab) bool {
	ft, ok := other.(*FileTab)
	if !ok || t.path == "" || ft.path == "" {
		return false
	}
	a, err := os.Stat(t.path)
	if err != nil {
		return false
	}
	b, err := os.Stat(ft.path)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}
