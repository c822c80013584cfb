package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxDiffLines bounds the LCS table. Generated manifests stay far below it.
const maxDiffLines = 4000

// Lipgloss styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// DiffGenerator renders unified diffs between the file on disk and the
// content nest would write.
//
//	gen := NewDiffGenerator()
//	fmt.Print(gen.Unified("package.json", onDisk, planned))
type DiffGenerator struct {
	// ContextLines is the number of unchanged lines shown around changes.
	ContextLines int

	// TabWidth is the number of spaces each tab expands to.
	TabWidth int

	// Plain disables lipgloss styling and line truncation. Used when the
	// diff is written to a file or compared in tests.
	Plain bool

	// Width truncates long lines. Zero means the terminal width.
	Width int
}

// NewDiffGenerator returns a generator with 3 context lines and 4-space tabs.
func NewDiffGenerator() *DiffGenerator {
	return &DiffGenerator{ContextLines: 3, TabWidth: 4}
}

// Diff is a convenience wrapper producing a plain unified diff.
func Diff(path string, old, newer []byte) string {
	gen := NewDiffGenerator()
	gen.Plain = true
	return gen.Unified(path, old, newer)
}

type editKind int

const (
	editKeep editKind = iota
	editAdd
	editDel
)

type edit struct {
	kind    editKind
	oldLine int // 1-based, 0 when added
	newLine int // 1-based, 0 when deleted
	text    string
}

// Unified returns a unified diff of old against newer labelled with path.
// Identical content yields the empty string.
func (g *DiffGenerator) Unified(path string, old, newer []byte) string {
	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return fmt.Sprintf("Binary files %s differ\n", path)
	}

	a := splitLines(string(old))
	b := splitLines(string(newer))
	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("%s: too large for diff (%d and %d lines)\n", path, len(a), len(b))
	}

	edits := lcsEdits(a, b)
	hunks := groupHunks(edits, g.context())
	if len(hunks) == 0 {
		// Only the trailing newline differs
		return fmt.Sprintf("%s: trailing newline differs\n", path)
	}

	var buf strings.Builder
	buf.WriteString(g.style(headerStyle, "--- "+path+" (on disk)") + "\n")
	buf.WriteString(g.style(headerStyle, "+++ "+path+" (generated)") + "\n")

	width := g.Width
	if width <= 0 && !g.Plain {
		width = terminalWidth()
	}

	for _, h := range hunks {
		g.writeHunk(&buf, h, width)
	}
	return buf.String()
}

func (g *DiffGenerator) context() int {
	if g.ContextLines <= 0 {
		return 3
	}
	return g.ContextLines
}

func (g *DiffGenerator) style(s lipgloss.Style, text string) string {
	if g.Plain {
		return text
	}
	return s.Render(text)
}

// lcsEdits walks a longest-common-subsequence table to produce the edit
// script. Deletions are emitted before additions at each divergence.
func lcsEdits(a, b []string) []edit {
	n, m := len(a), len(b)
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	edits := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			edits = append(edits, edit{kind: editKeep, oldLine: i + 1, newLine: j + 1, text: a[i]})
			i++
			j++
		case j >= m || (i < n && table[i+1][j] >= table[i][j+1]):
			edits = append(edits, edit{kind: editDel, oldLine: i + 1, text: a[i]})
			i++
		default:
			edits = append(edits, edit{kind: editAdd, newLine: j + 1, text: b[j]})
			j++
		}
	}
	return edits
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	edits              []edit
}

// groupHunks collects changes with up to ctx lines of surrounding context.
// Changes separated by more than 2*ctx unchanged lines form separate hunks.
func groupHunks(edits []edit, ctx int) []hunk {
	var changed []int
	for i, e := range edits {
		if e.kind != editKeep {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []hunk
	start := max(changed[0]-ctx, 0)
	end := min(changed[0]+ctx, len(edits)-1)
	for _, idx := range changed[1:] {
		if idx-ctx > end+1 {
			hunks = append(hunks, makeHunk(edits, start, end))
			start = idx - ctx
		}
		end = min(idx+ctx, len(edits)-1)
	}
	return append(hunks, makeHunk(edits, start, end))
}

func makeHunk(edits []edit, start, end int) hunk {
	h := hunk{edits: edits[start : end+1]}

	// Positions for empty sides come from the line before the hunk
	oldPos, newPos := 0, 0
	for _, e := range edits[:start] {
		if e.kind != editAdd {
			oldPos = e.oldLine
		}
		if e.kind != editDel {
			newPos = e.newLine
		}
	}

	for _, e := range h.edits {
		if e.kind != editAdd {
			if h.oldCount == 0 {
				h.oldStart = e.oldLine
			}
			h.oldCount++
		}
		if e.kind != editDel {
			if h.newCount == 0 {
				h.newStart = e.newLine
			}
			h.newCount++
		}
	}
	if h.oldCount == 0 {
		h.oldStart = oldPos
	}
	if h.newCount == 0 {
		h.newStart = newPos
	}
	return h
}

func (g *DiffGenerator) writeHunk(buf *strings.Builder, h hunk, width int) {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(g.style(hunkStyle, header) + "\n")

	for _, e := range h.edits {
		text := expandTabs(e.text, g.TabWidth)
		if width > 0 {
			text = truncateLine(text, width-2)
		}
		switch e.kind {
		case editAdd:
			buf.WriteString(g.style(addedStyle, "+"+text))
		case editDel:
			buf.WriteString(g.style(removedStyle, "-"+text))
		default:
			buf.WriteString(" " + text)
		}
		buf.WriteByte('\n')
	}
}

// isBinary checks the first 8KB for NUL bytes
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits content into lines, dropping the empty line after a
// final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

// truncateLine shortens s to maxWidth runes with a "..." indicator
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 || utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// terminalWidth returns the terminal width, defaulting to 80
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
