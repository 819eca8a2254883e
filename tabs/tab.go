package tabs

import "github.com/google/uuid"

// Kind classifies tabs for action enablement rules.
type Kind int

const (
	// KindNone matches the empty selection (no tab open).
	KindNone Kind = iota
	// KindAny matches any tab variant.
	KindAny
	// KindFile matches file-backed tabs only.
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAny:
		return "any"
	case KindFile:
		return "file"
	}
	return "unknown"
}

// Tab is one open view hosted in the manager's ordered collection. The
// manager owns a tab exclusively while it is present; Close removes it
// for good.
type Tab interface {
	ID() string
	Title() string
	Status() string

	// CanClose reports whether the tab may be closed right now. Callers
	// check it before Close; the manager never calls it itself.
	CanClose() bool

	// OnFocus runs when the tab becomes the selection, so it can move
	// input focus into its content area.
	OnFocus()

	// Equivalent reports whether this tab shows the same thing as other,
	// used by Manager.Add to prevent duplicate opens.
	Equivalent(other Tab) bool
}

// TextTab is a read-only tab showing fixed text, e.g. a tokenizer dump or
// a statistics report.
type TextTab struct {
	id      string
	title   string
	status  string
	content string
}

func NewTextTab(title, status, content string) *TextTab {
	return &TextTab{id: uuid.NewString(), title: title, status: status, content: content}
}

func (t *TextTab) ID() string                { return t.id }
func (t *TextTab) Title() string             { return t.title }
func (t *TextTab) Status() string            { return t.status }
func (t *TextTab) Content() string           { return t.content }
func (t *TextTab) CanClose() bool            { return true }
func (t *TextTab) OnFocus()                  {}
func (t *TextTab) Equivalent(other Tab) bool { return false }
