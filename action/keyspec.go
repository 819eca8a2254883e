package action

import "strings"

// Key specs use lowercase modifier names joined by "+" and end with a key
// name: "ctrl+s", "ctrl+shift+s", "f11". The syntax matches what the
// terminal layer reports for key presses, so a spec compares equal to the
// pressed key after normalization.

// NormalizeKey canonicalizes a key spec for comparison.
func NormalizeKey(spec string) string {
	return strings.ToLower(strings.TrimSpace(spec))
}

// ShortcutLabel converts a key spec to the label most people are used to
// reading in menus:
//
//	ShortcutLabel("ctrl+s")        -> "Ctrl+S"
//	ShortcutLabel("ctrl+shift+s")  -> "Ctrl+Shift+S"
//	ShortcutLabel("ctrl+0")        -> "Ctrl+Zero"
//	ShortcutLabel("f11")           -> "F11"
func ShortcutLabel(spec string) string {
	parts := strings.Split(NormalizeKey(spec), "+")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, labelPart(part))
	}
	return strings.Join(out, "+")
}

func labelPart(part string) string {
	switch part {
	case "":
		return ""
	case "ctrl":
		return "Ctrl"
	case "alt":
		return "Alt"
	case "shift":
		return "Shift"
	case "0":
		// 0 and O look too much like each other
		return "Zero"
	case "esc":
		return "Esc"
	case "pgup":
		return "PgUp"
	case "pgdown":
		return "PgDown"
	}
	if len(part) == 1 {
		return strings.ToUpper(part)
	}
	if part[0] == 'f' && isDigits(part[1:]) {
		return "F" + part[1:]
	}
	return strings.ToUpper(part[:1]) + part[1:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
