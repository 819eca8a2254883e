// Package action is the registry of named, keyboard-bound, independently
// enablable commands. Actions are identified by hierarchical paths like
// "File/Save", registered once at startup, and live for the process
// lifetime.
package action

// Kind distinguishes what triggering an action does.
type Kind int

const (
	// KindCommand runs a zero-argument callback.
	KindCommand Kind = iota
	// KindToggle flips a bound observable boolean.
	KindToggle
	// KindChoice binds an observable string restricted to a choice set.
	// Choice actions carry state rather than behavior and are not
	// keyboard-triggered.
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindToggle:
		return "toggle"
	case KindChoice:
		return "choice"
	}
	return "unknown"
}

// BoolVar is an observable boolean bound to a toggle action. Watchers run
// synchronously, in registration order, on every change.
type BoolVar struct {
	value    bool
	watchers []func(bool)
}

func NewBoolVar(initial bool) *BoolVar {
	return &BoolVar{value: initial}
}

func (v *BoolVar) Get() bool { return v.value }

func (v *BoolVar) Set(value bool) {
	if v.value == value {
		return
	}
	v.value = value
	for _, fn := range v.watchers {
		fn(value)
	}
}

func (v *BoolVar) Watch(fn func(bool)) {
	v.watchers = append(v.watchers, fn)
}

// ChoiceVar is an observable string bound to a choice action. Watchers
// run on every write, so a binding action can inspect even out-of-set
// assignments.
type ChoiceVar struct {
	value    string
	watchers []func(string)
}

func NewChoiceVar(initial string) *ChoiceVar {
	return &ChoiceVar{value: initial}
}

func (v *ChoiceVar) Get() string { return v.value }

func (v *ChoiceVar) Set(value string) {
	v.value = value
	for _, fn := range v.watchers {
		fn(value)
	}
}

func (v *ChoiceVar) Watch(fn func(string)) {
	v.watchers = append(v.watchers, fn)
}

// Action is one registered command. All mutation goes through the
// registry so notifications stay consistent.
type Action struct {
	path    string
	kind    Kind
	binding string
	enabled bool

	callback func()
	boolVar  *BoolVar
	choice   *ChoiceVar
	choices  []string
}

func (a *Action) Path() string    { return a.path }
func (a *Action) Kind() Kind      { return a.kind }
func (a *Action) Binding() string { return a.binding }
func (a *Action) Enabled() bool   { return a.enabled }

// BoolVar returns the bound boolean of a toggle action, nil otherwise.
func (a *Action) BoolVar() *BoolVar { return a.boolVar }

// ChoiceVar returns the bound value of a choice action, nil otherwise.
func (a *Action) ChoiceVar() *ChoiceVar { return a.choice }

// Choices returns the declared choice set of a choice action.
func (a *Action) Choices() []string {
	out := make([]string, len(a.choices))
	copy(out, a.choices)
	return out
}
