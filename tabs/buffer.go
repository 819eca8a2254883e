package tabs

import "strings"

// Buffer is a line-oriented editable text buffer. Positions are
// (row, column) pairs, rows from 0, columns in runes. Watchers run
// synchronously, in registration order, after every mutation.
type Buffer struct {
	lines    [][]rune
	watchers []func()
}

func NewBuffer(content string) *Buffer {
	b := &Buffer{}
	b.load(content)
	return b
}

func (b *Buffer) load(content string) {
	raw := strings.Split(content, "\n")
	b.lines = make([][]rune, len(raw))
	for i, line := range raw {
		b.lines[i] = []rune(line)
	}
}

// Watch registers a change callback. There is no unsubscription; watchers
// live as long as the buffer does.
func (b *Buffer) Watch(fn func()) {
	b.watchers = append(b.watchers, fn)
}

func (b *Buffer) notify() {
	for _, fn := range b.watchers {
		fn()
	}
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) String() string {
	parts := make([]string, len(b.lines))
	for i, line := range b.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

func (b *Buffer) SetString(content string) {
	b.load(content)
	b.notify()
}

// Chunks splits the content into groups of n lines each. Concatenating the
// chunks reproduces String() exactly; the final chunk has no trailing
// newline. An empty trailing chunk is never produced.
func (b *Buffer) Chunks(n int) []string {
	if n < 1 {
		n = 1
	}
	var chunks []string
	for start := 0; start < len(b.lines); start += n {
		end := start + n
		if end > len(b.lines) {
			end = len(b.lines)
		}
		parts := make([]string, 0, end-start)
		for _, line := range b.lines[start:end] {
			parts = append(parts, string(line))
		}
		chunk := strings.Join(parts, "\n")
		if end < len(b.lines) {
			chunk += "\n"
		} else if chunk == "" {
			break
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func (b *Buffer) clamp(row, col int) (int, int) {
	if row < 0 {
		row = 0
	}
	if row >= len(b.lines) {
		row = len(b.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if col > len(b.lines[row]) {
		col = len(b.lines[row])
	}
	return row, col
}

// Insert places text at (row, col). Newlines in text split lines. It
// returns the position immediately after the inserted text.
func (b *Buffer) Insert(row, col int, text string) (int, int) {
	row, col = b.clamp(row, col)
	head := b.lines[row][:col]
	tail := append([]rune(nil), b.lines[row][col:]...)

	segments := strings.Split(text, "\n")
	if len(segments) == 1 {
		line := append(append(append([]rune(nil), head...), []rune(text)...), tail...)
		b.lines[row] = line
		b.notify()
		return row, col + len([]rune(text))
	}

	first := append(append([]rune(nil), head...), []rune(segments[0])...)
	middle := make([][]rune, 0, len(segments)-2)
	for _, seg := range segments[1 : len(segments)-1] {
		middle = append(middle, []rune(seg))
	}
	lastSeg := []rune(segments[len(segments)-1])
	last := append(append([]rune(nil), lastSeg...), tail...)

	rebuilt := make([][]rune, 0, len(b.lines)+len(segments)-1)
	rebuilt = append(rebuilt, b.lines[:row]...)
	rebuilt = append(rebuilt, first)
	rebuilt = append(rebuilt, middle...)
	rebuilt = append(rebuilt, last)
	rebuilt = append(rebuilt, b.lines[row+1:]...)
	b.lines = rebuilt

	b.notify()
	return row + len(segments) - 1, len(lastSeg)
}

// Delete removes the text between (startRow, startCol) inclusive and
// (endRow, endCol) exclusive. The bounds are clamped and may span lines.
func (b *Buffer) Delete(startRow, startCol, endRow, endCol int) {
	startRow, startCol = b.clamp(startRow, startCol)
	endRow, endCol = b.clamp(endRow, endCol)
	if startRow > endRow || (startRow == endRow && startCol >= endCol) {
		return
	}

	head := b.lines[startRow][:startCol]
	tail := b.lines[endRow][endCol:]
	joined := append(append([]rune(nil), head...), tail...)

	rebuilt := make([][]rune, 0, len(b.lines)-(endRow-startRow))
	rebuilt = append(rebuilt, b.lines[:startRow]...)
	rebuilt = append(rebuilt, joined)
	rebuilt = append(rebuilt, b.lines[endRow+1:]...)
	b.lines = rebuilt

	b.notify()
}
