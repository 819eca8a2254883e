package tabs

import "fmt"

// Observer receives manager notifications. Callbacks are invoked
// synchronously, in subscription order, before the mutating call returns,
// so observers always see a consistent manager.
type Observer struct {
	// NewTab fires when a tab is appended, before the user can interact
	// with it. Dedup hits do not fire it.
	NewTab func(Tab)
	// Selected fires whenever the selection moves to a different tab.
	// The argument is nil when the collection became empty.
	Selected func(Tab)
}

// Manager owns an ordered sequence of tabs plus a single selection cursor.
// Insertion order is display order. A tab never appears twice.
type Manager struct {
	tabs      []Tab
	selected  int // index into tabs, -1 when empty
	observers []Observer
}

func NewManager() *Manager {
	return &Manager{selected: -1}
}

func (m *Manager) Watch(o Observer) {
	m.observers = append(m.observers, o)
}

// Tabs returns the tabs in display order.
func (m *Manager) Tabs() []Tab {
	out := make([]Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

func (m *Manager) Len() int {
	return len(m.tabs)
}

// Selected returns the selected tab, or nil when the manager is empty.
func (m *Manager) Selected() Tab {
	if m.selected < 0 {
		return nil
	}
	return m.tabs[m.selected]
}

// SelectedIndex returns the selection position, or -1 when empty.
func (m *Manager) SelectedIndex() int {
	return m.selected
}

func (m *Manager) indexOf(tab Tab) int {
	for i, t := range m.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

// Add appends tab, optionally selecting it. If an equivalent tab already
// exists the new one is discarded and the existing tab is returned
// (selected when requested).
func (m *Manager) Add(tab Tab, selectIt bool) Tab {
	if m.indexOf(tab) >= 0 {
		panic("tabs: cannot add the same tab twice")
	}
	for _, existing := range m.tabs {
		if tab.Equivalent(existing) {
			if selectIt {
				m.Select(existing)
			}
			return existing
		}
	}

	m.tabs = append(m.tabs, tab)
	for _, o := range m.observers {
		if o.NewTab != nil {
			o.NewTab(tab)
		}
	}
	if selectIt {
		m.Select(tab)
	}
	return tab
}

// Close removes tab unconditionally. Callers are expected to have checked
// CanClose already. Closing a tab that is not present is programmer error.
func (m *Manager) Close(tab Tab) {
	idx := m.indexOf(tab)
	if idx < 0 {
		panic(fmt.Sprintf("tabs: close of tab %q that is not in the manager", tab.Title()))
	}
	m.tabs = append(m.tabs[:idx], m.tabs[idx+1:]...)

	switch {
	case len(m.tabs) == 0:
		m.setSelected(-1)
	case idx < m.selected:
		m.selected-- // same tab, shifted down
	case idx == m.selected:
		next := idx
		if next >= len(m.tabs) {
			next = len(m.tabs) - 1
		}
		m.selected = -2 // force a notification even for the same index
		m.setSelected(next)
	}
}

// Select makes tab the selection. The tab must be present.
func (m *Manager) Select(tab Tab) {
	idx := m.indexOf(tab)
	if idx < 0 {
		panic(fmt.Sprintf("tabs: select of tab %q that is not in the manager", tab.Title()))
	}
	m.setSelected(idx)
}

// SelectIndex selects the tab at position i, reporting whether i was in
// range.
func (m *Manager) SelectIndex(i int) bool {
	if i < 0 || i >= len(m.tabs) {
		return false
	}
	m.setSelected(i)
	return true
}

// SelectAdjacent moves the selection one position left (-1) or right (+1)
// in display order. There is no wraparound; it reports whether a move
// happened.
func (m *Manager) SelectAdjacent(diff int) bool {
	if diff != 1 && diff != -1 {
		panic(fmt.Sprintf("tabs: SelectAdjacent diff must be +1 or -1, got %d", diff))
	}
	if m.selected < 0 {
		return false
	}
	target := m.selected + diff
	if target < 0 || target >= len(m.tabs) {
		return false
	}
	m.setSelected(target)
	return true
}

// MoveSelected swaps the selected tab with its neighbor; the selection
// follows the moved tab. It reports whether the move happened.
func (m *Manager) MoveSelected(diff int) bool {
	if diff != 1 && diff != -1 {
		panic(fmt.Sprintf("tabs: MoveSelected diff must be +1 or -1, got %d", diff))
	}
	if m.selected < 0 {
		return false
	}
	target := m.selected + diff
	if target < 0 || target >= len(m.tabs) {
		return false
	}
	m.tabs[m.selected], m.tabs[target] = m.tabs[target], m.tabs[m.selected]
	m.selected = target
	return true
}

func (m *Manager) setSelected(idx int) {
	if idx == m.selected {
		return
	}
	m.selected = idx
	var tab Tab
	if idx >= 0 {
		tab = m.tabs[idx]
	}
	if tab != nil {
		tab.OnFocus()
	}
	for _, o := range m.observers {
		if o.Selected != nil {
			o.Selected(tab)
		}
	}
}
