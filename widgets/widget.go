// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, popup overlay compositor)
//
// Not allowed here:
// - key handling, app state transitions, or tab policy
package widgets

// Widget renders itself into a width x height cell.
type Widget interface {
	Render(width, height int) string
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
