package action

import (
	"fmt"
	"strings"

	"github.com/quillpad/quill/tabs"
)

// Observer receives registry notifications. Callbacks run synchronously,
// in subscription order, before the mutating call returns.
type Observer struct {
	// NewAction fires when an action is registered, before its initial
	// enablement is computed, so observers can attach to the action
	// while it is still in its default state.
	NewAction func(*Action)
	// EnabledChanged fires once per flip of an action's enabled flag.
	EnabledChanged func(*Action, bool)
	// Anomaly reports non-fatal oddities, e.g. a choice value set
	// outside its declared set.
	Anomaly func(*Action, string)
}

// Spec describes one action to register. Exactly one effect field must
// match the kind: Do for commands, Bool for toggles, Choice and Choices
// for choice actions.
type Spec struct {
	Path    string
	Kind    Kind
	Do      func()
	Bool    *BoolVar
	Choice  *ChoiceVar
	Choices []string

	// Binding is an optional key spec; pressing it is equivalent to
	// Trigger while the action is enabled. Choice actions take no
	// binding.
	Binding string

	// TabKinds restricts enablement to selections of the given kinds,
	// re-evaluated on every selection change. Mutually exclusive with
	// Filetypes.
	TabKinds []tabs.Kind
	// Filetypes restricts enablement to file tabs whose filetype name
	// is listed, re-evaluated on selection changes and on the active
	// tab's filetype changes.
	Filetypes []string
}

type rule struct {
	action    *Action
	tabKinds  []tabs.Kind
	filetypes []string
}

// Registry is the central mapping from hierarchical path to action. A
// registry watches one tab manager to drive enablement rules.
type Registry struct {
	manager   *tabs.Manager
	order     []*Action
	byPath    map[string]*Action
	rules     []rule
	observers []Observer
}

func NewRegistry(manager *tabs.Manager) *Registry {
	r := &Registry{
		manager: manager,
		byPath:  map[string]*Action{},
	}
	if manager != nil {
		manager.Watch(tabs.Observer{
			Selected: func(tabs.Tab) { r.evaluateRules() },
			NewTab:   r.attachTab,
		})
	}
	return r
}

func (r *Registry) Watch(o Observer) {
	r.observers = append(r.observers, o)
}

// attachTab subscribes to per-tab filetype changes so filetype-keyed
// rules follow the active tab as it is reclassified.
func (r *Registry) attachTab(t tabs.Tab) {
	ft, ok := t.(*tabs.FileTab)
	if !ok {
		return
	}
	ft.OnFiletypeChange(func() {
		if r.manager.Selected() == t {
			r.evaluateRules()
		}
	})
}

// Register adds an action. Misuse is fatal: a duplicate path, a path with
// a leading or trailing separator, an effect that does not match the
// kind, or an enablement rule keyed on both tab kinds and filetype names.
func (r *Registry) Register(spec Spec) *Action {
	if spec.Path == "" || strings.HasPrefix(spec.Path, "/") || strings.HasSuffix(spec.Path, "/") {
		panic(fmt.Sprintf("action: path %q must be non-empty without leading or trailing /", spec.Path))
	}
	if _, exists := r.byPath[spec.Path]; exists {
		panic(fmt.Sprintf("action: there's already an action with path %q", spec.Path))
	}
	if spec.TabKinds != nil && spec.Filetypes != nil {
		panic(fmt.Sprintf("action: %q may restrict by tab kinds or by filetype names, not both", spec.Path))
	}

	a := &Action{
		path:    spec.Path,
		kind:    spec.Kind,
		binding: NormalizeKey(spec.Binding),
		enabled: true,
	}
	switch spec.Kind {
	case KindCommand:
		if spec.Do == nil {
			panic(fmt.Sprintf("action: command %q needs a callback", spec.Path))
		}
		a.callback = spec.Do
	case KindToggle:
		if spec.Bool == nil {
			panic(fmt.Sprintf("action: toggle %q needs a bound BoolVar", spec.Path))
		}
		a.boolVar = spec.Bool
	case KindChoice:
		if spec.Choice == nil || len(spec.Choices) == 0 {
			panic(fmt.Sprintf("action: choice %q needs a bound ChoiceVar and a choice set", spec.Path))
		}
		if spec.Binding != "" {
			panic(fmt.Sprintf("action: choice %q cannot take a key binding", spec.Path))
		}
		a.choice = spec.Choice
		a.choices = append([]string(nil), spec.Choices...)
		spec.Choice.Watch(func(value string) {
			for _, c := range a.choices {
				if c == value {
					return
				}
			}
			r.anomaly(a, fmt.Sprintf("value %q is not one of the choices %v", value, a.choices))
		})
	default:
		panic(fmt.Sprintf("action: %q has unknown kind %d", spec.Path, spec.Kind))
	}

	r.byPath[a.path] = a
	r.order = append(r.order, a)

	// observers see the action before its initial enablement is
	// computed, so they can react to the registration itself
	for _, o := range r.observers {
		if o.NewAction != nil {
			o.NewAction(a)
		}
	}

	if spec.TabKinds != nil || spec.Filetypes != nil {
		ru := rule{action: a, tabKinds: spec.TabKinds, filetypes: spec.Filetypes}
		r.rules = append(r.rules, ru)
		r.setEnabled(a, r.evaluate(ru))
	}
	return a
}

// Lookup returns the action at path, nil when nothing is registered
// there. A trailing separator is tolerated the way sloppy callers write
// paths.
func (r *Registry) Lookup(path string) *Action {
	return r.byPath[strings.TrimRight(path, "/")]
}

// All returns every action in registration order.
func (r *Registry) All() []*Action {
	out := make([]*Action, len(r.order))
	copy(out, r.order)
	return out
}

// SetEnabled flips the action's enabled flag, notifying observers once
// per actual change. Unknown paths are programmer error.
func (r *Registry) SetEnabled(path string, enabled bool) {
	a := r.Lookup(path)
	if a == nil {
		panic(fmt.Sprintf("action: no action with path %q", path))
	}
	r.setEnabled(a, enabled)
}

func (r *Registry) setEnabled(a *Action, enabled bool) {
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	for _, o := range r.observers {
		if o.EnabledChanged != nil {
			o.EnabledChanged(a, enabled)
		}
	}
}

// Trigger executes the action's effect if it is enabled, reporting
// whether anything ran. Commands invoke their callback; toggles flip
// their bound boolean; choice actions carry no triggerable effect.
func (r *Registry) Trigger(path string) bool {
	a := r.Lookup(path)
	if a == nil {
		panic(fmt.Sprintf("action: no action with path %q", path))
	}
	if !a.enabled {
		return false
	}
	switch a.kind {
	case KindCommand:
		a.callback()
	case KindToggle:
		a.boolVar.Set(!a.boolVar.Get())
	default:
		return false
	}
	return true
}

// HandleKey dispatches a pressed key to the bound action. The key is
// consumed (true) only when a matching action is enabled; otherwise it
// passes through to the focused widget untouched.
func (r *Registry) HandleKey(key string) bool {
	key = NormalizeKey(key)
	if key == "" {
		return false
	}
	for _, a := range r.order {
		if a.binding != key || !a.enabled {
			continue
		}
		r.Trigger(a.path)
		return true
	}
	return false
}

func (r *Registry) anomaly(a *Action, detail string) {
	for _, o := range r.observers {
		if o.Anomaly != nil {
			o.Anomaly(a, detail)
		}
	}
}

func (r *Registry) evaluateRules() {
	for _, ru := range r.rules {
		r.setEnabled(ru.action, r.evaluate(ru))
	}
}

func (r *Registry) evaluate(ru rule) bool {
	var sel tabs.Tab
	if r.manager != nil {
		sel = r.manager.Selected()
	}
	if ru.filetypes != nil {
		ft, ok := sel.(*tabs.FileTab)
		if !ok {
			return false
		}
		name := ft.Filetype().Name
		for _, want := range ru.filetypes {
			if want == name {
				return true
			}
		}
		return false
	}
	for _, kind := range ru.tabKinds {
		switch kind {
		case tabs.KindNone:
			if sel == nil {
				return true
			}
		case tabs.KindAny:
			if sel != nil {
				return true
			}
		case tabs.KindFile:
			if _, ok := sel.(*tabs.FileTab); ok {
				return true
			}
		}
	}
	return false
}
